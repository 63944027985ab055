package scene

// Field describes one attribute an entity accepts.
type Field struct {
	Key     string // attribute name in scripts
	Out     string // key in the serialized document, if emitted directly
	Kind    Kind
	Integer bool // encode numbers as integers
}

// Schema is the ordered allow-list of an entity's attributes.
type Schema []Field

// Lookup returns the field named key.
func (s Schema) Lookup(key string) (Field, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}

	return Field{}, false
}

// Keys returns the attribute names in declaration order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}

	return keys
}

// Document keys shared by shapes and lights.
const (
	keyLocation    = "Location"
	keyOrientation = "Orientation"
	keyPointAt     = "PointAt"
	keyComponents  = "Components"
)

// Shape attribute names with special handling.
const (
	attrLocation  = "location"
	attrMass      = "mass"
	attrAttachTo  = "attachto"
	attrGroup     = "group"
	attrCollision = "collision"
	attrType      = "type"
)

// ShapeSchema is the allow-list of shape attributes.
var ShapeSchema = Schema{
	{Key: attrLocation, Out: keyLocation, Kind: KindVector},
	{Key: "orientation", Out: keyOrientation, Kind: KindVector},
	{Key: "pointat", Out: keyPointAt, Kind: KindVector},
	{Key: "kinematics", Out: "Kinematics", Kind: KindString},
	{Key: "centerofmass", Out: "CenterOfMass", Kind: KindVector},
	{Key: attrCollision, Kind: KindBool},
	{Key: "cmodel", Out: "CollisionModel", Kind: KindString},
	{Key: "cmoffset", Out: "CollisionModelOffset", Kind: KindVector},
	{Key: "cmrotation", Out: "CollisionModelRotation", Kind: KindVector},
	{Key: "cmscale", Out: "CollisionModelScale", Kind: KindVector},
	{Key: attrType, Kind: KindString},
	{Key: "model", Out: "Model", Kind: KindString},
	{Key: "moffset", Out: "ModelOffset", Kind: KindVector},
	{Key: "mrotation", Out: "ModelRotation", Kind: KindVector},
	{Key: "scale", Out: "ModelScale", Kind: KindVector},
	{Key: attrMass, Out: "Mass", Kind: KindNumber},
	{Key: "material", Out: "Material", Kind: KindString},
	{Key: "visible", Out: "Visible", Kind: KindBool},
	{Key: "frictionforce", Out: "FrictionForce", Kind: KindNumber},
	{Key: attrAttachTo, Kind: KindString},
	{Key: attrGroup, Kind: KindString},
}

// LightSchema is the allow-list of light attributes.
var LightSchema = Schema{
	{Key: attrLocation, Out: keyLocation, Kind: KindVector},
	{Key: "orientation", Out: keyOrientation, Kind: KindVector},
	{Key: "pointat", Out: keyPointAt, Kind: KindVector},
	{Key: "color", Out: "Color", Kind: KindColor},
	{Key: "attenuaterange", Out: "AttenuateRange", Kind: KindNumber},
	{Key: "attenuateconst", Out: "AttenuateConst", Kind: KindNumber},
	{Key: "attenuatelinear", Out: "AttenuateLinear", Kind: KindNumber},
	{Key: "attenuatequad", Out: "AttenuateQuad", Kind: KindNumber},
}

// BackgroundSchema lists the background settings.
var BackgroundSchema = Schema{
	{Key: "model", Out: "Model", Kind: KindString},
	{Key: "color", Out: "Color", Kind: KindColor},
	{Key: "material", Out: "Material", Kind: KindString},
	{Key: "curvature", Out: "Curvature", Kind: KindNumber},
	{Key: "tiling", Out: "Tiling", Kind: KindNumber, Integer: true},
	{Key: "distance", Out: "Distance", Kind: KindNumber},
}

// ShadowsSchema lists the shadow settings.
var ShadowsSchema = Schema{
	{Key: "enabled", Out: "Enabled", Kind: KindBool},
	{Key: "stencil", Out: "Stencil", Kind: KindBool},
	{Key: "modulative", Out: "Modulative", Kind: KindBool},
	{Key: "color", Out: "Color", Kind: KindColor},
}

// PhysicsSchema lists the physics engine settings.
var PhysicsSchema = Schema{
	{Key: "gravity", Out: "Gravity", Kind: KindNumber},
	{Key: "spacescale", Out: "SpaceScale", Kind: KindNumber},
	{Key: "massscale", Out: "MassScale", Kind: KindNumber},
	{Key: "solveriterations", Out: "SolverIterations", Kind: KindNumber, Integer: true},
	{Key: "splitimpulse", Out: "SplitImpulse", Kind: KindBool},
}

// encode returns v as stored in a document under f.
func (f Field) encode(v Value) any {
	if n, ok := v.(Number); ok && f.Integer {
		return int(n)
	}

	return v.Native()
}
