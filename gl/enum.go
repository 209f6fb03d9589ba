package gl

import "fmt"

// Enum is a GL enumerant.
type Enum uint32

// Bitfield is a GL bit mask.
type Bitfield uint32

// Error codes.
const (
	NoError          Enum = 0
	InvalidEnum      Enum = 0x0500
	InvalidValue     Enum = 0x0501
	InvalidOperation Enum = 0x0502
	StackOverflow    Enum = 0x0503
	StackUnderflow   Enum = 0x0504
	OutOfMemory      Enum = 0x0505
)

// Clear mask bits.
const (
	DepthBufferBit   Bitfield = 0x00000100
	AccumBufferBit   Bitfield = 0x00000200
	StencilBufferBit Bitfield = 0x00000400
	ColorBufferBit   Bitfield = 0x00004000
)

// Capabilities.
const (
	PointSmooth              Enum = 0x0B10
	LineSmooth               Enum = 0x0B20
	LineStipple              Enum = 0x0B24
	PolygonSmooth            Enum = 0x0B41
	PolygonStipple           Enum = 0x0B42
	CullFaceCap              Enum = 0x0B44
	Lighting                 Enum = 0x0B50
	ColorMaterial            Enum = 0x0B57
	Fog                      Enum = 0x0B60
	DepthTest                Enum = 0x0B71
	StencilTest              Enum = 0x0B90
	Normalize                Enum = 0x0BA1
	AlphaTest                Enum = 0x0BC0
	Dither                   Enum = 0x0BD0
	Blend                    Enum = 0x0BE2
	IndexLogicOp             Enum = 0x0BF1
	ColorLogicOp             Enum = 0x0BF2
	ScissorTest              Enum = 0x0C11
	TextureGenS              Enum = 0x0C60
	TextureGenT              Enum = 0x0C61
	TextureGenR              Enum = 0x0C62
	TextureGenQ              Enum = 0x0C63
	Map1Color4               Enum = 0x0D90
	Map1Index                Enum = 0x0D91
	Map1Normal               Enum = 0x0D92
	Map1TextureCoord1        Enum = 0x0D93
	Map1TextureCoord2        Enum = 0x0D94
	Map1TextureCoord3        Enum = 0x0D95
	Map1TextureCoord4        Enum = 0x0D96
	Map1Vertex3              Enum = 0x0D97
	Map1Vertex4              Enum = 0x0D98
	Map2Color4               Enum = 0x0DB0
	Map2Index                Enum = 0x0DB1
	Map2Normal               Enum = 0x0DB2
	Map2TextureCoord1        Enum = 0x0DB3
	Map2TextureCoord2        Enum = 0x0DB4
	Map2TextureCoord3        Enum = 0x0DB5
	Map2TextureCoord4        Enum = 0x0DB6
	Map2Vertex3              Enum = 0x0DB7
	Map2Vertex4              Enum = 0x0DB8
	Texture1D                Enum = 0x0DE0
	Texture2D                Enum = 0x0DE1
	PolygonOffsetPoint       Enum = 0x2A01
	PolygonOffsetLine        Enum = 0x2A02
	ClipPlane0               Enum = 0x3000
	ClipPlane1               Enum = 0x3001
	ClipPlane2               Enum = 0x3002
	ClipPlane3               Enum = 0x3003
	ClipPlane4               Enum = 0x3004
	ClipPlane5               Enum = 0x3005
	Light0                   Enum = 0x4000
	Light1                   Enum = 0x4001
	Light2                   Enum = 0x4002
	Light3                   Enum = 0x4003
	Light4                   Enum = 0x4004
	Light5                   Enum = 0x4005
	Light6                   Enum = 0x4006
	Light7                   Enum = 0x4007
	PolygonOffsetFill        Enum = 0x8037
	MultisampleARB           Enum = 0x809D
	SampleAlphaToCoverageARB Enum = 0x809E
	SampleAlphaToOneARB      Enum = 0x809F
	SampleCoverageARB        Enum = 0x80A0
)

// MaxLights is the number of fixed-function lights.
const MaxLights = 8

// Draw buffers and faces.
const (
	None         Enum = 0
	FrontLeft    Enum = 0x0400
	FrontRight   Enum = 0x0401
	BackLeft     Enum = 0x0402
	BackRight    Enum = 0x0403
	Front        Enum = 0x0404
	Back         Enum = 0x0405
	Left         Enum = 0x0406
	Right        Enum = 0x0407
	FrontAndBack Enum = 0x0408
	Aux0         Enum = 0x0409
	Aux1         Enum = 0x040A
	Aux2         Enum = 0x040B
	Aux3         Enum = 0x040C
)

// Winding.
const (
	CW  Enum = 0x0900
	CCW Enum = 0x0901
)

// Render modes.
const (
	Render   Enum = 0x1C00
	Feedback Enum = 0x1C01
	Select   Enum = 0x1C02
)

// Data types.
const (
	Byte          Enum = 0x1400
	UnsignedByte  Enum = 0x1401
	Short         Enum = 0x1402
	UnsignedShort Enum = 0x1403
	Int           Enum = 0x1404
	UnsignedInt   Enum = 0x1405
	Float         Enum = 0x1406
	Double        Enum = 0x140A
)

var errorNames = map[Enum]string{
	NoError:          "GL_NO_ERROR",
	InvalidEnum:      "GL_INVALID_ENUM",
	InvalidValue:     "GL_INVALID_VALUE",
	InvalidOperation: "GL_INVALID_OPERATION",
	StackOverflow:    "GL_STACK_OVERFLOW",
	StackUnderflow:   "GL_STACK_UNDERFLOW",
	OutOfMemory:      "GL_OUT_OF_MEMORY",
}

// ErrorString names an error code returned by GetError.
func ErrorString(e Enum) string {
	if s, ok := errorNames[e]; ok {
		return s
	}
	return fmt.Sprintf("GL_ERROR(%#04x)", uint32(e))
}

// String formats the enumerant in hex; names depend on context in GL.
func (e Enum) String() string { return fmt.Sprintf("%#04x", uint32(e)) }
