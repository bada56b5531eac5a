package event

// Class is the identity of a declaring class. Handlers are registered
// against a class, and a class chain orders them most-derived first.
type Class struct {
	name   string
	parent *Class
}

// NewClass declares a class. parent is nil for a root class.
func NewClass(name string, parent *Class) *Class {
	return &Class{name: name, parent: parent}
}

// Name returns the class name.
func (c *Class) Name() string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}

// Parent returns the class this one derives from, or nil.
func (c *Class) Parent() *Class {
	return c.parent
}

// Chain returns the class followed by its ancestors, most-derived first.
func (c *Class) Chain() []*Class {
	var chain []*Class
	for k := c; k != nil; k = k.parent {
		chain = append(chain, k)
	}
	return chain
}

// DerivesFrom reports whether other appears in the class chain.
func (c *Class) DerivesFrom(other *Class) bool {
	for k := c; k != nil; k = k.parent {
		if k == other {
			return true
		}
	}
	return false
}
