// SPDX-License-Identifier: Unlicense OR MIT

// Package gl defines the subset of the OpenGL (ES) API used by trippygl,
// expressed as typed handles, enums and the Functions interface.
package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ACTIVE_ATTRIBUTES                         = 0x8b89
	ACTIVE_ATTRIBUTE_MAX_LENGTH               = 0x8b8a
	ACTIVE_UNIFORMS                           = 0x8b86
	ACTIVE_UNIFORM_BLOCKS                     = 0x8a36
	ACTIVE_UNIFORM_MAX_LENGTH                 = 0x8b87
	ALWAYS                                    = 0x207
	ARRAY_BUFFER                              = 0x8892
	BACK                                      = 0x405
	BLEND                                     = 0xbe2
	BYTE                                      = 0x1400
	CCW                                       = 0x901
	CLAMP_TO_BORDER                           = 0x812d
	CLAMP_TO_EDGE                             = 0x812f
	COLOR_ATTACHMENT0                         = 0x8ce0
	COLOR_BUFFER_BIT                          = 0x4000
	COMPILE_STATUS                            = 0x8b81
	CONSTANT_ALPHA                            = 0x8003
	CONSTANT_COLOR                            = 0x8001
	COPY_READ_BUFFER                          = 0x8f36
	COPY_WRITE_BUFFER                         = 0x8f37
	CULL_FACE                                 = 0xb44
	CW                                        = 0x900
	DECR                                      = 0x1e03
	DECR_WRAP                                 = 0x8508
	DEPTH24_STENCIL8                          = 0x88f0
	DEPTH_ATTACHMENT                          = 0x8d00
	DEPTH_BUFFER_BIT                          = 0x100
	DEPTH_COMPONENT                           = 0x1902
	DEPTH_COMPONENT16                         = 0x81a5
	DEPTH_COMPONENT24                         = 0x81a6
	DEPTH_COMPONENT32F                        = 0x8cac
	DEPTH_STENCIL                             = 0x84f9
	DEPTH_STENCIL_ATTACHMENT                  = 0x821a
	DEPTH_TEST                                = 0xb71
	DOUBLE                                    = 0x140a
	DRAW_FRAMEBUFFER                          = 0x8ca9
	DST_ALPHA                                 = 0x304
	DST_COLOR                                 = 0x306
	DYNAMIC_COPY                              = 0x88ea
	DYNAMIC_DRAW                              = 0x88e8
	DYNAMIC_READ                              = 0x88e9
	ELEMENT_ARRAY_BUFFER                      = 0x8893
	EQUAL                                     = 0x202
	FALSE                                     = 0
	FLOAT                                     = 0x1406
	FRAGMENT_SHADER                           = 0x8b30
	FRAMEBUFFER                               = 0x8d40
	FRAMEBUFFER_COMPLETE                      = 0x8cd5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8cd6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8cd7
	FRAMEBUFFER_INCOMPLETE_MULTISAMPLE        = 0x8d56
	FRAMEBUFFER_UNDEFINED                     = 0x8219
	FRAMEBUFFER_UNSUPPORTED                   = 0x8cdd
	FRONT                                     = 0x404
	FRONT_AND_BACK                            = 0x408
	FUNC_ADD                                  = 0x8006
	FUNC_REVERSE_SUBTRACT                     = 0x800b
	FUNC_SUBTRACT                             = 0x800a
	GEOMETRY_SHADER                           = 0x8dd9
	GEQUAL                                    = 0x206
	GREATER                                   = 0x204
	HALF_FLOAT                                = 0x140b
	INCR                                      = 0x1e02
	INCR_WRAP                                 = 0x8507
	INFO_LOG_LENGTH                           = 0x8b84
	INT                                       = 0x1404
	INVALID_ENUM                              = 0x500
	INVALID_FRAMEBUFFER_OPERATION             = 0x506
	INVALID_INDEX                             = ^uint(0)
	INVALID_OPERATION                         = 0x502
	INVALID_VALUE                             = 0x501
	INVERT                                    = 0x150a
	KEEP                                      = 0x1e00
	LEQUAL                                    = 0x203
	LESS                                      = 0x201
	LINEAR                                    = 0x2601
	LINEAR_MIPMAP_LINEAR                      = 0x2703
	LINEAR_MIPMAP_NEAREST                     = 0x2701
	LINES                                     = 0x1
	LINE_LOOP                                 = 0x2
	LINE_STRIP                                = 0x3
	LINK_STATUS                               = 0x8b82
	MAX                                       = 0x8008
	MAX_3D_TEXTURE_SIZE                       = 0x8073
	MAX_ARRAY_TEXTURE_LAYERS                  = 0x88ff
	MAX_COLOR_ATTACHMENTS                     = 0x8cdf
	MAX_COMBINED_TEXTURE_IMAGE_UNITS          = 0x8b4d
	MAX_CUBE_MAP_TEXTURE_SIZE                 = 0x851c
	MAX_RENDERBUFFER_SIZE                     = 0x84e8
	MAX_SAMPLES                               = 0x8d57
	MAX_TEXTURE_IMAGE_UNITS                   = 0x8872
	MAX_TEXTURE_SIZE                          = 0xd33
	MAX_UNIFORM_BUFFER_BINDINGS               = 0x8a2f
	MAX_VERTEX_ATTRIBS                        = 0x8869
	MIN                                       = 0x8007
	MIRRORED_REPEAT                           = 0x8370
	NEAREST                                   = 0x2600
	NEAREST_MIPMAP_LINEAR                     = 0x2702
	NEAREST_MIPMAP_NEAREST                    = 0x2700
	NEVER                                     = 0x200
	NOTEQUAL                                  = 0x205
	NO_ERROR                                  = 0x0
	ONE                                       = 0x1
	ONE_MINUS_CONSTANT_ALPHA                  = 0x8004
	ONE_MINUS_CONSTANT_COLOR                  = 0x8002
	ONE_MINUS_DST_ALPHA                       = 0x305
	ONE_MINUS_DST_COLOR                       = 0x307
	ONE_MINUS_SRC_ALPHA                       = 0x303
	ONE_MINUS_SRC_COLOR                       = 0x301
	OUT_OF_MEMORY                             = 0x505
	PACK_ALIGNMENT                            = 0xd05
	POINTS                                    = 0x0
	R32F                                      = 0x822e
	R32I                                      = 0x8235
	R32UI                                     = 0x8236
	READ_FRAMEBUFFER                          = 0x8ca8
	RED                                       = 0x1903
	RED_INTEGER                               = 0x8d94
	RENDERBUFFER                              = 0x8d41
	RENDERER                                  = 0x1f01
	REPEAT                                    = 0x2901
	REPLACE                                   = 0x1e01
	RG                                        = 0x8227
	RG32F                                     = 0x8230
	RG32I                                     = 0x823b
	RG32UI                                    = 0x823c
	RGB                                       = 0x1907
	RGB32F                                    = 0x8815
	RGB32I                                    = 0x8d83
	RGB32UI                                   = 0x8d71
	RGBA                                      = 0x1908
	RGBA32F                                   = 0x8814
	RGBA32I                                   = 0x8d82
	RGBA32UI                                  = 0x8d70
	RGBA8                                     = 0x8058
	RGBA_INTEGER                              = 0x8d99
	RGB_INTEGER                               = 0x8d98
	RG_INTEGER                                = 0x8228
	SCISSOR_TEST                              = 0xc11
	SHADING_LANGUAGE_VERSION                  = 0x8b8c
	SHORT                                     = 0x1402
	SRC_ALPHA                                 = 0x302
	SRC_ALPHA_SATURATE                        = 0x308
	SRC_COLOR                                 = 0x300
	STATIC_COPY                               = 0x88e6
	STATIC_DRAW                               = 0x88e4
	STATIC_READ                               = 0x88e5
	STENCIL_ATTACHMENT                        = 0x8d20
	STENCIL_BUFFER_BIT                        = 0x400
	STENCIL_INDEX8                            = 0x8d48
	STENCIL_TEST                              = 0xb90
	STREAM_COPY                               = 0x88e2
	STREAM_DRAW                               = 0x88e0
	STREAM_READ                               = 0x88e1
	TEXTURE0                                  = 0x84c0
	TEXTURE_1D                                = 0xde0
	TEXTURE_2D                                = 0xde1
	TEXTURE_2D_ARRAY                          = 0x8c1a
	TEXTURE_2D_MULTISAMPLE                    = 0x9100
	TEXTURE_2D_MULTISAMPLE_ARRAY              = 0x9102
	TEXTURE_3D                                = 0x806f
	TEXTURE_CUBE_MAP                          = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X               = 0x8515
	TEXTURE_MAG_FILTER                        = 0x2800
	TEXTURE_MIN_FILTER                        = 0x2801
	TEXTURE_WRAP_R                            = 0x8072
	TEXTURE_WRAP_S                            = 0x2802
	TEXTURE_WRAP_T                            = 0x2803
	TRIANGLES                                 = 0x4
	TRIANGLE_FAN                              = 0x6
	TRIANGLE_STRIP                            = 0x5
	TRUE                                      = 1
	UNIFORM_BLOCK_ACTIVE_UNIFORMS             = 0x8a42
	UNIFORM_BLOCK_DATA_SIZE                   = 0x8a40
	UNIFORM_BLOCK_NAME_LENGTH                 = 0x8a41
	UNIFORM_BUFFER                            = 0x8a11
	UNIFORM_BUFFER_OFFSET_ALIGNMENT           = 0x8a34
	UNPACK_ALIGNMENT                          = 0xcf5
	UNSIGNED_BYTE                             = 0x1401
	UNSIGNED_INT                              = 0x1405
	UNSIGNED_INT_24_8                         = 0x84fa
	UNSIGNED_SHORT                            = 0x1403
	VENDOR                                    = 0x1f00
	VERSION                                   = 0x1f02
	VERTEX_SHADER                             = 0x8b31
	ZERO                                      = 0x0

	// GLSL variable types, as reported by glGetActiveUniform and
	// glGetActiveAttrib.
	BOOL                          = 0x8b56
	BOOL_VEC2                     = 0x8b57
	BOOL_VEC3                     = 0x8b58
	BOOL_VEC4                     = 0x8b59
	FLOAT_MAT2                    = 0x8b5a
	FLOAT_MAT2x3                  = 0x8b65
	FLOAT_MAT2x4                  = 0x8b66
	FLOAT_MAT3                    = 0x8b5b
	FLOAT_MAT3x2                  = 0x8b67
	FLOAT_MAT3x4                  = 0x8b68
	FLOAT_MAT4                    = 0x8b5c
	FLOAT_MAT4x2                  = 0x8b69
	FLOAT_MAT4x3                  = 0x8b6a
	FLOAT_VEC2                    = 0x8b50
	FLOAT_VEC3                    = 0x8b51
	FLOAT_VEC4                    = 0x8b52
	INT_SAMPLER_1D                = 0x8dc9
	INT_SAMPLER_2D                = 0x8dca
	INT_SAMPLER_2D_ARRAY          = 0x8dcf
	INT_SAMPLER_3D                = 0x8dcb
	INT_SAMPLER_CUBE              = 0x8dcc
	INT_VEC2                      = 0x8b53
	INT_VEC3                      = 0x8b54
	INT_VEC4                      = 0x8b55
	SAMPLER_1D                    = 0x8b5d
	SAMPLER_1D_ARRAY              = 0x8dc0
	SAMPLER_1D_SHADOW             = 0x8b61
	SAMPLER_2D                    = 0x8b5e
	SAMPLER_2D_ARRAY              = 0x8dc1
	SAMPLER_2D_ARRAY_SHADOW       = 0x8dc4
	SAMPLER_2D_MULTISAMPLE        = 0x9108
	SAMPLER_2D_MULTISAMPLE_ARRAY  = 0x910b
	SAMPLER_2D_SHADOW             = 0x8b62
	SAMPLER_3D                    = 0x8b5f
	SAMPLER_CUBE                  = 0x8b60
	SAMPLER_CUBE_SHADOW           = 0x8dc5
	UNSIGNED_INT_SAMPLER_1D       = 0x8dd1
	UNSIGNED_INT_SAMPLER_2D       = 0x8dd2
	UNSIGNED_INT_SAMPLER_2D_ARRAY = 0x8dd7
	UNSIGNED_INT_SAMPLER_3D       = 0x8dd3
	UNSIGNED_INT_SAMPLER_CUBE     = 0x8dd4
	UNSIGNED_INT_VEC2             = 0x8dc6
	UNSIGNED_INT_VEC3             = 0x8dc7
	UNSIGNED_INT_VEC4             = 0x8dc8
)

// IsSamplerType reports whether typ is one of the GLSL sampler types.
func IsSamplerType(typ Enum) bool {
	switch typ {
	case SAMPLER_1D, SAMPLER_1D_ARRAY, SAMPLER_1D_SHADOW,
		SAMPLER_2D, SAMPLER_2D_ARRAY, SAMPLER_2D_ARRAY_SHADOW, SAMPLER_2D_SHADOW,
		SAMPLER_2D_MULTISAMPLE, SAMPLER_2D_MULTISAMPLE_ARRAY,
		SAMPLER_3D, SAMPLER_CUBE, SAMPLER_CUBE_SHADOW,
		INT_SAMPLER_1D, INT_SAMPLER_2D, INT_SAMPLER_2D_ARRAY, INT_SAMPLER_3D, INT_SAMPLER_CUBE,
		UNSIGNED_INT_SAMPLER_1D, UNSIGNED_INT_SAMPLER_2D, UNSIGNED_INT_SAMPLER_2D_ARRAY,
		UNSIGNED_INT_SAMPLER_3D, UNSIGNED_INT_SAMPLER_CUBE:
		return true
	}
	return false
}
