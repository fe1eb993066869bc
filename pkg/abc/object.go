package abc

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Handle refers to an object in an ObjectTable. It does not own the object.
type Handle int

// NoObject is the parent handle of root objects.
const NoObject Handle = -1

// Object is a named node of the scene hierarchy.
type Object struct {
	Name     string
	Parent   Handle
	Schema   Schema
	children []Handle
}

// Children returns the handles of the direct children.
func (o *Object) Children() []Handle {
	return o.children
}

// ObjectTable owns the objects of a scene.
type ObjectTable struct {
	objects []*Object
	roots   []Handle
	log     *zap.Logger
}

// NewObjectTable creates an empty table. A nil logger disables logging.
func NewObjectTable(log *zap.Logger) *ObjectTable {
	if log == nil {
		log = zap.NewNop()
	}
	return &ObjectTable{log: log}
}

// Add appends an object under parent and returns its handle. parent must be
// NoObject or an existing handle; otherwise nothing is added and NoObject is
// returned.
func (t *ObjectTable) Add(name string, parent Handle, s Schema) Handle {
	if parent != NoObject && !t.valid(parent) {
		t.log.Warn("object parent not found",
			zap.String("name", name),
			zap.Int("parent", int(parent)))
		return NoObject
	}

	h := Handle(len(t.objects))
	s.Object = h
	t.objects = append(t.objects, &Object{Name: name, Parent: parent, Schema: s})
	if parent == NoObject {
		t.roots = append(t.roots, h)
	} else {
		p := t.objects[parent]
		p.children = append(p.children, h)
	}
	return h
}

func (t *ObjectTable) valid(h Handle) bool {
	return h >= 0 && int(h) < len(t.objects)
}

// Object returns the object for h.
func (t *ObjectTable) Object(h Handle) (*Object, bool) {
	if !t.valid(h) {
		return nil, false
	}
	return t.objects[h], true
}

// Len returns the number of objects.
func (t *ObjectTable) Len() int {
	return len(t.objects)
}

// Children returns the direct children of h, or the root objects for
// NoObject.
func (t *ObjectTable) Children(h Handle) []Handle {
	if h == NoObject {
		return t.roots
	}
	if !t.valid(h) {
		return nil
	}
	return t.objects[h].children
}

// Path returns the slash-separated full name of h.
func (t *ObjectTable) Path(h Handle) string {
	var names []string
	for t.valid(h) {
		o := t.objects[h]
		names = append(names, o.Name)
		h = o.Parent
	}
	var sb strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		sb.WriteByte('/')
		sb.WriteString(names[i])
	}
	return sb.String()
}

// UpdateAll refreshes every schema for time t in insertion order, so parents
// update before their children. It stops at the first failing object.
func (t *ObjectTable) UpdateAll(time float64) error {
	for h, o := range t.objects {
		if err := o.Schema.UpdateSample(time); err != nil {
			return errors.Wrapf(err, "object %q", t.Path(Handle(h)))
		}
	}
	t.log.Debug("updated objects",
		zap.Float64("time", time),
		zap.Int("objects", len(t.objects)))
	return nil
}
