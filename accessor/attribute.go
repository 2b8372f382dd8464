package accessor

// Attribute runs the resolver and the extractor over unit. The error is
// ErrNoForeignImport when the unit names no declaring class, or a
// *ShapeError when its invoke method does not have the accessor shape.
func Attribute(unit *SourceUnit, resolver Resolver) (Observation, error) {
	class, ok := resolver.DeclaringClass(unit)
	if !ok {
		return Observation{}, ErrNoForeignImport
	}
	method, err := InvokedMethod(unit)
	if err != nil {
		return Observation{}, err
	}
	return Observation{
		Key:      Key{Class: class, Method: method},
		Accessor: unit.Name,
	}, nil
}
