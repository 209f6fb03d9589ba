package gl

type capKind uint8

const (
	// capToggle assigns a flag.
	capToggle capKind = iota + 1
	// capDirty assigns a flag and raises a dirty group on a real change.
	capDirty
	// capRejected is a configuration fault when enabled, a no-op when disabled.
	capRejected
)

type flagRef func(*state) *bool

// capability describes how Enable/Disable treat one enumerant.
type capability struct {
	kind   capKind
	field  flagRef
	dirty  flagRef
	reason string

	// coupled is assigned alongside field. Only FOG uses it: the legacy
	// dispatch fell through from FOG into LIGHTING, so toggling fog also sets
	// the lighting master switch. Most likely a defect; kept unless
	// Config.DecoupleFog is set.
	coupled flagRef
}

func toggle(f flagRef) capability { return capability{kind: capToggle, field: f} }

func dirtyToggle(f, dirty flagRef) capability {
	return capability{kind: capDirty, field: f, dirty: dirty}
}

func rendermodeFlag(f flagRef) capability {
	return dirtyToggle(f, func(s *state) *bool { return &s.rendermodeDirty })
}

var capabilities = buildCapabilities()

func buildCapabilities() map[Enum]capability {
	caps := map[Enum]capability{
		ScissorTest: dirtyToggle(
			func(s *state) *bool { return &s.scissorTest },
			func(s *state) *bool { return &s.scissorDirty },
		),
		CullFaceCap: toggle(func(s *state) *bool { return &s.cullFace }),

		DepthTest:      rendermodeFlag(func(s *state) *bool { return &s.depthTest }),
		Texture1D:      rendermodeFlag(func(s *state) *bool { return &s.texture1D }),
		Texture2D:      rendermodeFlag(func(s *state) *bool { return &s.texture2D }),
		Blend:          rendermodeFlag(func(s *state) *bool { return &s.blend }),
		AlphaTest:      rendermodeFlag(func(s *state) *bool { return &s.alphaTest }),
		Dither:         rendermodeFlag(func(s *state) *bool { return &s.dither }),
		Fog:            rendermodeFlag(func(s *state) *bool { return &s.fog }),
		MultisampleARB: rendermodeFlag(func(s *state) *bool { return &s.multisample }),

		Lighting:      toggle(func(s *state) *bool { return &s.lighting }),
		ColorMaterial: toggle(func(s *state) *bool { return &s.colorMaterial }),
		TextureGenS:   toggle(func(s *state) *bool { return &s.sGen.enabled }),
		TextureGenT:   toggle(func(s *state) *bool { return &s.tGen.enabled }),
		TextureGenR:   toggle(func(s *state) *bool { return &s.rGen.enabled }),
		TextureGenQ:   toggle(func(s *state) *bool { return &s.qGen.enabled }),
		Normalize:     toggle(func(s *state) *bool { return &s.normalize }),
	}

	fog := caps[Fog]
	fog.coupled = func(s *state) *bool { return &s.lighting }
	caps[Fog] = fog

	for i := 0; i < MaxLights; i++ {
		caps[Light0+Enum(i)] = toggle(func(s *state) *bool { return &s.lights[i].enabled })
	}

	reject := func(reason string, targets ...Enum) {
		for _, t := range targets {
			caps[t] = capability{kind: capRejected, reason: reason}
		}
	}
	reject("user clip planes are not supported",
		ClipPlane0, ClipPlane1, ClipPlane2, ClipPlane3, ClipPlane4, ClipPlane5)
	reject("stencil test is not supported", StencilTest)
	reject("logical pixel operation is not supported", ColorLogicOp, IndexLogicOp)
	reject("smooth rendering is not supported (use multisampling instead)",
		PointSmooth, LineSmooth, PolygonSmooth)
	reject("stipple is not supported", LineStipple, PolygonStipple)
	reject("polygon offset is not supported",
		PolygonOffsetFill, PolygonOffsetLine, PolygonOffsetPoint)
	reject("coverage value manipulation is not supported",
		SampleAlphaToCoverageARB, SampleAlphaToOneARB, SampleCoverageARB)
	reject("evaluators are not supported",
		Map1Color4, Map1Index, Map1Normal,
		Map1TextureCoord1, Map1TextureCoord2, Map1TextureCoord3, Map1TextureCoord4,
		Map1Vertex3, Map1Vertex4,
		Map2Color4, Map2Index, Map2Normal,
		Map2TextureCoord1, Map2TextureCoord2, Map2TextureCoord3, Map2TextureCoord4,
		Map2Vertex3, Map2Vertex4)
	return caps
}

// Enable turns a capability on.
func (c *Context) Enable(target Enum) { c.setFlag("glEnable", target, true) }

// Disable turns a capability off.
func (c *Context) Disable(target Enum) { c.setFlag("glDisable", target, false) }

func (c *Context) setFlag(op string, target Enum, value bool) {
	cp, ok := capabilities[target]
	if !ok {
		c.setError(InvalidEnum)
		return
	}

	switch cp.kind {
	case capToggle:
		*cp.field(&c.st) = value
	case capDirty:
		p := cp.field(&c.st)
		if *p != value {
			*p = value
			*cp.dirty(&c.st) = true
		}
	case capRejected:
		if value {
			c.fault(op, cp.reason)
		}
	}

	if cp.coupled != nil && !c.cfg.DecoupleFog {
		*cp.coupled(&c.st) = value
	}
}

// IsEnabled reports a capability. Unsupported capabilities are always off;
// unknown ones set GL_INVALID_ENUM.
func (c *Context) IsEnabled(target Enum) bool {
	cp, ok := capabilities[target]
	if !ok {
		c.setError(InvalidEnum)
		return false
	}
	if cp.kind == capRejected {
		return false
	}
	return *cp.field(&c.st)
}
