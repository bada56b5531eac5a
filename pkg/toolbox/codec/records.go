package codec

import "encoding/binary"

// ToolboxEvent is the common header of every toolbox event block.
type ToolboxEvent struct {
	Size      uint32
	Reference int32
	Code      uint32
	Flags     uint32
}

// ToolboxEventShape is the 16-byte toolbox event header.
var ToolboxEventShape = NewLayout("ToolboxEvent").
	Uint32("size").
	Int32("reference_number").
	Uint32("event_code").
	Uint32("flags").
	MustBuild()

func toolboxEventFrom(r *Record) ToolboxEvent {
	size, _ := r.Uint32("size")
	ref, _ := r.Int32("reference_number")
	code, _ := r.Uint32("event_code")
	flags, _ := r.Uint32("flags")
	return ToolboxEvent{Size: size, Reference: ref, Code: code, Flags: flags}
}

// ToolboxEventDecoder decodes a bare toolbox event header.
var ToolboxEventDecoder = Typed[ToolboxEvent]{
	Shape: ToolboxEventShape,
	Convert: func(r *Record) (ToolboxEvent, error) {
		return toolboxEventFrom(r), nil
	},
}

// MessageHeaderSize is the length of the common message header.
const MessageHeaderSize = 20

// MessageHeader is the common header of every user message.
type MessageHeader struct {
	Size    uint32
	Sender  int32
	MyRef   uint32
	YourRef uint32
	Code    uint32
}

// MessageHeaderShape is the 20-byte message header.
var MessageHeaderShape = NewLayout("MessageHeader").
	Uint32("size").
	Int32("sender").
	Uint32("my_ref").
	Uint32("your_ref").
	Uint32("code").
	MustBuild()

// MessageHeaderDecoder decodes a bare message header.
var MessageHeaderDecoder = Typed[MessageHeader]{
	Shape: MessageHeaderShape,
	Convert: func(r *Record) (MessageHeader, error) {
		return messageHeaderFrom(r), nil
	},
}

func messageHeaderFrom(r *Record) MessageHeader {
	size, _ := r.Uint32("size")
	sender, _ := r.Int32("sender")
	my, _ := r.Uint32("my_ref")
	your, _ := r.Uint32("your_ref")
	code, _ := r.Uint32("code")
	return MessageHeader{Size: size, Sender: sender, MyRef: my, YourRef: your, Code: code}
}

// DecodeMessageHeader reads the header at the start of a message block.
func DecodeMessageHeader(buf []byte) (MessageHeader, error) {
	return MessageHeaderDecoder.DecodeTyped(buf)
}

// AppendMessage appends the header followed by body to dst.
// The size field is rewritten to the header plus body rounded up to a word.
func AppendMessage(dst []byte, h MessageHeader, body []byte) []byte {
	size := (MessageHeaderSize + len(body) + 3) &^ 3
	h.Size = uint32(size)

	dst = binary.LittleEndian.AppendUint32(dst, h.Size)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(h.Sender))
	dst = binary.LittleEndian.AppendUint32(dst, h.MyRef)
	dst = binary.LittleEndian.AppendUint32(dst, h.YourRef)
	dst = binary.LittleEndian.AppendUint32(dst, h.Code)
	dst = append(dst, body...)
	for pad := size - MessageHeaderSize - len(body); pad > 0; pad-- {
		dst = append(dst, 0)
	}
	return dst
}

// Point is a pair of OS units.
type Point struct {
	X, Y int32
}

// BBox is a rectangle in OS units.
type BBox struct {
	Min, Max Point
}

// Show types carried by AboutToBeShown.
const (
	ShowDefault   uint32 = 0
	ShowFullSpec  uint32 = 1
	ShowTopLeft   uint32 = 2
	ShowCentre    uint32 = 3
	ShowAtPointer uint32 = 4
)

// AboutToBeShown is delivered before an object is shown. Which placement
// fields are present depends on ShowType.
type AboutToBeShown struct {
	ToolboxEvent
	ShowType uint32

	// TopLeft is present for ShowTopLeft.
	TopLeft Optional[Point]

	// The remaining fields are present for ShowFullSpec.
	VisibleArea    Optional[BBox]
	Scroll         Optional[Point]
	Behind         Optional[int32]
	WindowFlags    Optional[uint32]
	ParentWindow   Optional[int32]
	AlignmentFlags Optional[uint32]
}

// AboutToBeShownShape is the AboutToBeShown block, 60 bytes.
var AboutToBeShownShape = NewLayout("AboutToBeShown").
	Extend(ToolboxEventShape).
	Uint32("show_type").
	When("show_type", ShowTopLeft).
	Int32("top_left_x").Int32("top_left_y").
	End().
	At(20).
	When("show_type", ShowFullSpec).
	Int32("visible_min_x").Int32("visible_min_y").
	Int32("visible_max_x").Int32("visible_max_y").
	Int32("scroll_x").Int32("scroll_y").
	Int32("behind").
	Uint32("window_flags").
	Int32("parent_window_handle").
	Uint32("alignment_flags").
	End().
	MustBuild()

// AboutToBeShownDecoder decodes an AboutToBeShown block.
var AboutToBeShownDecoder = Typed[AboutToBeShown]{
	Shape:   AboutToBeShownShape,
	Convert: aboutToBeShownFrom,
}

func aboutToBeShownFrom(r *Record) (AboutToBeShown, error) {
	ev := AboutToBeShown{ToolboxEvent: toolboxEventFrom(r)}
	ev.ShowType, _ = r.Uint32("show_type")

	if x, ok := r.Int32("top_left_x"); ok {
		y, _ := r.Int32("top_left_y")
		ev.TopLeft = Some(Point{X: x, Y: y})
	}

	if minX, ok := r.Int32("visible_min_x"); ok {
		minY, _ := r.Int32("visible_min_y")
		maxX, _ := r.Int32("visible_max_x")
		maxY, _ := r.Int32("visible_max_y")
		ev.VisibleArea = Some(BBox{Min: Point{minX, minY}, Max: Point{maxX, maxY}})

		sx, _ := r.Int32("scroll_x")
		sy, _ := r.Int32("scroll_y")
		ev.Scroll = Some(Point{X: sx, Y: sy})

		behind, _ := r.Int32("behind")
		ev.Behind = Some(behind)
		flags, _ := r.Uint32("window_flags")
		ev.WindowFlags = Some(flags)
		parent, _ := r.Int32("parent_window_handle")
		ev.ParentWindow = Some(parent)
		align, _ := r.Uint32("alignment_flags")
		ev.AlignmentFlags = Some(align)
	}
	return ev, nil
}
