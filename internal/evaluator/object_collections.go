package evaluator

import (
	"strings"

	"github.com/0xJonas/Phi/internal/config"
)

// Collection is an ordered list of unnamed members fused with a map of
// named members. Members that are missing locally are looked up in the
// superclasses listed in the "super" member, depth first.
//
// The "super" list is created lazily: giving every collection one up front
// would recurse forever, since the list is a collection itself.
type Collection struct {
	unnamed []Object
	named   map[string]Object
	order   []string

	super *Collection
	// superRefs counts the collections currently using this one as their
	// "super" list. While it is non-zero, every unnamed member must be a
	// collection and writes are checked for inheritance cycles.
	superRefs int
}

func NewCollection() *Collection {
	return &Collection{named: make(map[string]Object)}
}

func (c *Collection) Type() ObjectType { return COLLECTION_OBJ }
func (c *Collection) Inspect() string  { return c.inspect(map[*Collection]bool{}) }

func (c *Collection) inspect(seen map[*Collection]bool) string {
	if seen[c] {
		return "[...]"
	}
	seen[c] = true
	defer delete(seen, c)

	parts := make([]string, 0, len(c.unnamed)+len(c.order))
	for _, v := range c.unnamed {
		parts = append(parts, inspectNested(v, seen))
	}
	for _, name := range c.order {
		parts = append(parts, name+" = "+inspectNested(c.named[name], seen))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func inspectNested(o Object, seen map[*Collection]bool) string {
	if c, ok := o.(*Collection); ok {
		return c.inspect(seen)
	}
	return o.Inspect()
}

// Len returns the number of own unnamed members.
func (c *Collection) Len() int { return len(c.unnamed) }

// Names returns the own named members in creation order.
func (c *Collection) Names() []string {
	return append([]string(nil), c.order...)
}

// Has reports whether name is an own named member.
func (c *Collection) Has(name string) bool {
	_, ok := c.named[name]
	return ok
}

// Super returns the superclass list, or nil if it was never created.
func (c *Collection) Super() *Collection { return c.super }

// CreateUnnamed makes index addressable, filling any gap with NULL. Creating
// an existing index does nothing.
func (c *Collection) CreateUnnamed(index int64) error {
	if index < 0 {
		return newError(AccessError, "index %d is negative", index)
	}
	if index < int64(len(c.unnamed)) {
		return nil
	}
	if index >= config.MaxUnnamedIndex {
		return newError(AccessError, "index %d is too large", index)
	}
	for int64(len(c.unnamed)) <= index {
		c.unnamed = append(c.unnamed, NULL)
	}
	return nil
}

// CreateNamed adds a named member holding NULL. Unlike CreateUnnamed,
// creating an existing member fails.
func (c *Collection) CreateNamed(name string) error {
	if config.IsReservedName(name) {
		return newError(AccessError, "cannot create reserved member %s", name)
	}
	if _, ok := c.named[name]; ok {
		return newError(AccessError, "member %s already exists", name)
	}
	c.named[name] = NULL
	c.order = append(c.order, name)
	return nil
}

// AppendUnnamed adds value as a new last unnamed member.
func (c *Collection) AppendUnnamed(value Object) error {
	index := int64(len(c.unnamed))
	if err := c.CreateUnnamed(index); err != nil {
		return err
	}
	if err := c.SetUnnamed(index, value); err != nil {
		c.unnamed = c.unnamed[:index]
		return err
	}
	return nil
}

// superclasses returns the collections in the "super" list, skipping NULL.
func (c *Collection) superclasses() []*Collection {
	if c.super == nil {
		return nil
	}
	result := make([]*Collection, 0, len(c.super.unnamed))
	for _, v := range c.super.unnamed {
		if sc, ok := v.(*Collection); ok {
			result = append(result, sc)
		}
	}
	return result
}

func (c *Collection) superList() *Collection {
	if c.super == nil {
		c.super = NewCollection()
		c.super.superRefs = 1
	}
	return c.super
}

// unnamedOwner finds the collection holding index: c itself, else the first
// superclass in depth-first order.
func (c *Collection) unnamedOwner(index int64) *Collection {
	if index < int64(len(c.unnamed)) {
		return c
	}
	for _, sc := range c.superclasses() {
		if owner := sc.unnamedOwner(index); owner != nil {
			return owner
		}
	}
	return nil
}

func (c *Collection) namedOwner(name string) *Collection {
	if _, ok := c.named[name]; ok {
		return c
	}
	for _, sc := range c.superclasses() {
		if owner := sc.namedOwner(name); owner != nil {
			return owner
		}
	}
	return nil
}

// Length is the number of unnamed members reachable through c, which is the
// maximum over c and all of its superclasses.
func (c *Collection) Length() int64 {
	length := int64(len(c.unnamed))
	for _, sc := range c.superclasses() {
		if l := sc.Length(); l > length {
			length = l
		}
	}
	return length
}

func (c *Collection) GetUnnamed(index int64) (Object, error) {
	if index < 0 {
		return nil, newError(AccessError, "index %d is negative", index)
	}
	owner := c.unnamedOwner(index)
	if owner == nil {
		return nil, newError(AccessError, "index %d is out of bounds: length is %d", index, c.Length())
	}
	return owner.unnamed[index], nil
}

func (c *Collection) GetNamed(name string) (Object, error) {
	switch name {
	case config.ThisName:
		return c, nil
	case config.LengthName:
		return &Integer{Value: c.Length()}, nil
	case config.SuperName:
		return c.superList(), nil
	}
	owner := c.namedOwner(name)
	if owner == nil {
		return nil, newError(AccessError, "%s is not a member of this collection", name)
	}
	return owner.named[name], nil
}

// SetUnnamed overwrites the first member at index found in c or its
// superclasses. When that member belongs to a superclass list the list's
// rules apply to the new value.
func (c *Collection) SetUnnamed(index int64, value Object) error {
	if index < 0 {
		return newError(AccessError, "index %d is negative", index)
	}

	owner := c.unnamedOwner(index)
	if owner == nil {
		return newError(AccessError, "index %d is out of bounds: length is %d", index, c.Length())
	}
	if owner.superRefs > 0 {
		switch value.(type) {
		case *Collection, *Null:
		default:
			return newError(StructureError, "members of a superclass list must be collections, got %s", value.Type())
		}
	}
	prev := owner.unnamed[index]
	owner.unnamed[index] = value

	if owner.superRefs > 0 && containsCycles(owner, nil) {
		owner.unnamed[index] = prev
		return newError(StructureError, "collection cannot be its own superclass")
	}
	return nil
}

// SetNamed overwrites the first member called name found in c or its
// superclasses. Writing "super" replaces the superclass list.
func (c *Collection) SetNamed(name string, value Object) error {
	switch name {
	case config.ThisName, config.LengthName:
		return newError(AccessError, "member %s is read-only", name)
	case config.SuperName:
		return c.setSuper(value)
	}
	owner := c.namedOwner(name)
	if owner == nil {
		return newError(AccessError, "member %s does not exist", name)
	}
	owner.named[name] = value
	return nil
}

func (c *Collection) setSuper(value Object) error {
	list, ok := value.(*Collection)
	if !ok {
		return newError(StructureError, "member super must be a collection of collections, got %s", value.Type())
	}
	for _, v := range list.unnamed {
		switch v.(type) {
		case *Collection, *Null:
		default:
			return newError(StructureError, "member super must be a collection of collections, found %s", v.Type())
		}
	}

	prev := c.super
	list.superRefs++
	c.super = list

	if containsCycles(list, nil) {
		c.super = prev
		list.superRefs--
		return newError(StructureError, "collection cannot be its own superclass")
	}
	if prev != nil {
		prev.superRefs--
	}
	return nil
}

// containsCycles walks the inheritance graph below list depth first. path
// holds the collections derived from the current position; meeting one of
// them again means the graph has a cycle. Shared superclasses on different
// branches are fine.
func containsCycles(list *Collection, path []*Collection) bool {
	for _, v := range list.unnamed {
		sc, ok := v.(*Collection)
		if !ok {
			continue
		}
		for _, seen := range path {
			if seen == sc {
				return true
			}
		}
		if sc.super != nil && containsCycles(sc.super, append(path, sc)) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of c. Collections reachable from c more than once
// are copied once, so shared superclasses stay shared in the copy.
func (c *Collection) Clone() *Collection {
	return c.clone(make(map[*Collection]*Collection))
}

func (c *Collection) clone(memo map[*Collection]*Collection) *Collection {
	if cp, ok := memo[c]; ok {
		return cp
	}
	cp := &Collection{
		unnamed: make([]Object, len(c.unnamed)),
		named:   make(map[string]Object, len(c.named)),
		order:   append([]string(nil), c.order...),
	}
	memo[c] = cp

	for i, v := range c.unnamed {
		cp.unnamed[i] = cloneMemo(v, memo)
	}
	for name, v := range c.named {
		cp.named[name] = cloneMemo(v, memo)
	}
	if c.super != nil {
		cp.super = c.super.clone(memo)
		cp.super.superRefs++
	}
	return cp
}

func cloneMemo(o Object, memo map[*Collection]*Collection) Object {
	if c, ok := o.(*Collection); ok {
		return c.clone(memo)
	}
	return o
}
