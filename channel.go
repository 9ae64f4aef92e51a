package bitmap

// Channel is an elementary pixel component: a kind (red, alpha, index...)
// stored with a fixed bit width. A PixelFormat packs up to four channels.
type Channel uint8

// The numeric values are part of the packed PixelFormat code and must not be
// reordered.
const (
	ChannelEmpty Channel = iota

	// 1 bit
	ChannelUndefined1
	ChannelAlpha1

	// 4 bits
	ChannelUndefined4
	ChannelRed4
	ChannelGreen4
	ChannelBlue4
	ChannelAlpha4

	// 5 bits
	ChannelUndefined5
	ChannelRed5
	ChannelGreen5
	ChannelBlue5

	// 6 bits
	ChannelUndefined6
	ChannelGreen6

	// 8 bits
	ChannelUndefined8
	ChannelIndex8
	ChannelRed8
	ChannelGreen8
	ChannelBlue8
	ChannelAlpha8
	ChannelGray8

	// 16 bits
	ChannelUndefined16
	ChannelIndex16
	ChannelGray16

	// 32 bits, IEEE float
	ChannelUndefined32
	ChannelRed32F
	ChannelGreen32F
	ChannelBlue32F
	ChannelAlpha32F
	ChannelGray32F

	channelCount
)

// ChannelKind is the semantic role of a channel, independent of its width.
type ChannelKind uint8

const (
	KindNone ChannelKind = iota
	KindUndefined
	KindIndex
	KindRed
	KindGreen
	KindBlue
	KindAlpha
	KindGray
)

type channelInfo struct {
	name string
	bits int
	kind ChannelKind
}

var channelTable = [channelCount]channelInfo{
	ChannelEmpty:       {"Empty", 0, KindNone},
	ChannelUndefined1:  {"Undefined1", 1, KindUndefined},
	ChannelAlpha1:      {"Alpha1", 1, KindAlpha},
	ChannelUndefined4:  {"Undefined4", 4, KindUndefined},
	ChannelRed4:        {"Red4", 4, KindRed},
	ChannelGreen4:      {"Green4", 4, KindGreen},
	ChannelBlue4:       {"Blue4", 4, KindBlue},
	ChannelAlpha4:      {"Alpha4", 4, KindAlpha},
	ChannelUndefined5:  {"Undefined5", 5, KindUndefined},
	ChannelRed5:        {"Red5", 5, KindRed},
	ChannelGreen5:      {"Green5", 5, KindGreen},
	ChannelBlue5:       {"Blue5", 5, KindBlue},
	ChannelUndefined6:  {"Undefined6", 6, KindUndefined},
	ChannelGreen6:      {"Green6", 6, KindGreen},
	ChannelUndefined8:  {"Undefined8", 8, KindUndefined},
	ChannelIndex8:      {"Index8", 8, KindIndex},
	ChannelRed8:        {"Red8", 8, KindRed},
	ChannelGreen8:      {"Green8", 8, KindGreen},
	ChannelBlue8:       {"Blue8", 8, KindBlue},
	ChannelAlpha8:      {"Alpha8", 8, KindAlpha},
	ChannelGray8:       {"Gray8", 8, KindGray},
	ChannelUndefined16: {"Undefined16", 16, KindUndefined},
	ChannelIndex16:     {"Index16", 16, KindIndex},
	ChannelGray16:      {"Gray16", 16, KindGray},
	ChannelUndefined32: {"Undefined32", 32, KindUndefined},
	ChannelRed32F:      {"Red32F", 32, KindRed},
	ChannelGreen32F:    {"Green32F", 32, KindGreen},
	ChannelBlue32F:     {"Blue32F", 32, KindBlue},
	ChannelAlpha32F:    {"Alpha32F", 32, KindAlpha},
	ChannelGray32F:     {"Gray32F", 32, KindGray},
}

// IsValid reports whether c is a known channel.
func (c Channel) IsValid() bool {
	return c < channelCount
}

// Bits returns the bit width of the channel, or -1 for unknown values.
func (c Channel) Bits() int {
	if !c.IsValid() {
		return -1
	}
	return channelTable[c].bits
}

// Kind returns the semantic role of the channel.
func (c Channel) Kind() ChannelKind {
	if !c.IsValid() {
		return KindNone
	}
	return channelTable[c].kind
}

// IsFloat reports whether the channel stores an IEEE 754 float.
func (c Channel) IsFloat() bool {
	return c >= ChannelRed32F && c <= ChannelGray32F
}

// String returns the channel name.
func (c Channel) String() string {
	if !c.IsValid() {
		return "Unknown"
	}
	return channelTable[c].name
}
