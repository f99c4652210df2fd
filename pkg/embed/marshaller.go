package phi

import (
	"reflect"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/0xJonas/Phi/internal/evaluator"
)

// Marshaller handles conversion between Go and Phi values.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to a Phi Object. Booleans become 1 and 0,
// slices become unnamed members and maps and structs named members.
func (m *Marshaller) ToValue(val interface{}) (evaluator.Object, error) {
	if val == nil {
		return evaluator.NULL, nil
	}

	// Check if already an Object
	if obj, ok := val.(evaluator.Object); ok {
		return obj, nil
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return evaluator.TRUE, nil
		}
		return evaluator.FALSE, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := cast.ToInt64E(val)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return &evaluator.Integer{Value: i}, nil
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(val)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return &evaluator.Float{Value: f}, nil
	case reflect.String:
		return &evaluator.String{Value: v.String()}, nil
	case reflect.Slice, reflect.Array:
		return m.sliceToCollection(v)
	case reflect.Map:
		return m.mapToCollection(v)
	case reflect.Struct:
		return m.structToCollection(v)
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return evaluator.NULL, nil
		}
		return m.ToValue(v.Elem().Interface())
	}
	return nil, errors.Errorf("cannot convert %T to a Phi value", val)
}

func (m *Marshaller) sliceToCollection(v reflect.Value) (*evaluator.Collection, error) {
	result := evaluator.NewCollection()
	for i := 0; i < v.Len(); i++ {
		val, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		if err := result.AppendUnnamed(val); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return result, nil
}

// mapToCollection declares members in key order so that conversion is
// deterministic.
func (m *Marshaller) mapToCollection(v reflect.Value) (*evaluator.Collection, error) {
	values := make(map[string]reflect.Value, v.Len())
	keys := make([]string, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := cast.ToStringE(iter.Key().Interface())
		if err != nil {
			return nil, errors.Wrap(err, "map key")
		}
		values[key] = iter.Value()
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := evaluator.NewCollection()
	for _, key := range keys {
		if err := m.define(result, key, values[key].Interface()); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (m *Marshaller) structToCollection(v reflect.Value) (*evaluator.Collection, error) {
	result := evaluator.NewCollection()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // Skip unexported fields
			continue
		}
		if err := m.define(result, field.Name, v.Field(i).Interface()); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (m *Marshaller) define(c *evaluator.Collection, name string, val interface{}) error {
	obj, err := m.ToValue(val)
	if err != nil {
		return errors.Wrapf(err, "member %s", name)
	}
	if err := c.CreateNamed(name); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.SetNamed(name, obj))
}

// FromValue converts a Phi Object to a Go value.
// targetType is optional; if provided, tries to convert to that type.
// Collections with only unnamed members become slices, all others
// map[string]interface{} with unnamed members keyed by their index.
// Functions and symbols are returned unconverted.
func (m *Marshaller) FromValue(obj evaluator.Object, targetType reflect.Type) (interface{}, error) {
	return m.fromValue(obj, targetType, map[*evaluator.Collection]bool{})
}

func (m *Marshaller) fromValue(obj evaluator.Object, targetType reflect.Type, active map[*evaluator.Collection]bool) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}

	// If target type is evaluator.Object, return as is
	if targetType != nil && targetType == reflect.TypeOf((*evaluator.Object)(nil)).Elem() {
		return obj, nil
	}

	switch o := obj.(type) {
	case *evaluator.Integer:
		return convertScalar(o.Value, targetType)
	case *evaluator.Float:
		return convertScalar(o.Value, targetType)
	case *evaluator.String:
		return convertScalar(o.Value, targetType)
	case *evaluator.Null:
		return nil, nil
	case *evaluator.Collection:
		if active[o] {
			return nil, errors.New("cannot convert a collection that contains itself")
		}
		active[o] = true
		defer delete(active, o)
		if len(o.Names()) == 0 {
			return m.collectionToSlice(o, targetType, active)
		}
		return m.collectionToMap(o, active)
	}
	return obj, nil
}

// convertScalar returns v as is, or converted to targetType's kind.
func convertScalar(v interface{}, targetType reflect.Type) (interface{}, error) {
	if targetType == nil || targetType.Kind() == reflect.Interface {
		return v, nil
	}
	var (
		out interface{}
		err error
	)
	switch targetType.Kind() {
	case reflect.Int:
		out, err = cast.ToIntE(v)
	case reflect.Int64:
		out, err = cast.ToInt64E(v)
	case reflect.Int32:
		out, err = cast.ToInt32E(v)
	case reflect.Uint:
		out, err = cast.ToUintE(v)
	case reflect.Uint64:
		out, err = cast.ToUint64E(v)
	case reflect.Float64:
		out, err = cast.ToFloat64E(v)
	case reflect.Float32:
		out, err = cast.ToFloat32E(v)
	case reflect.String:
		out, err = cast.ToStringE(v)
	case reflect.Bool:
		out, err = cast.ToBoolE(v)
	default:
		return nil, errors.Errorf("cannot convert %v to %s", v, targetType)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}

func (m *Marshaller) collectionToSlice(c *evaluator.Collection, targetType reflect.Type, active map[*evaluator.Collection]bool) (interface{}, error) {
	// If targetType is nil, default to []interface{}
	elemType := reflect.TypeOf((*interface{})(nil)).Elem()
	if targetType != nil && targetType.Kind() == reflect.Slice {
		elemType = targetType.Elem()
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		el, err := c.GetUnnamed(int64(i))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		val, err := m.fromValue(el, elemType, active)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}

		if val == nil {
			// Handle nil for pointers/interfaces
			slice = reflect.Append(slice, reflect.Zero(elemType))
			continue
		}
		rv := reflect.ValueOf(val)
		if !rv.Type().AssignableTo(elemType) {
			return nil, errors.Errorf("cannot convert %s to %s", rv.Type(), elemType)
		}
		slice = reflect.Append(slice, rv)
	}
	return slice.Interface(), nil
}

func (m *Marshaller) collectionToMap(c *evaluator.Collection, active map[*evaluator.Collection]bool) (map[string]interface{}, error) {
	result := make(map[string]interface{}, c.Len()+len(c.Names()))
	for i := 0; i < c.Len(); i++ {
		el, err := c.GetUnnamed(int64(i))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		val, err := m.fromValue(el, nil, active)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		result[cast.ToString(i)] = val
	}
	for _, name := range c.Names() {
		el, err := c.GetNamed(name)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		val, err := m.fromValue(el, nil, active)
		if err != nil {
			return nil, errors.Wrapf(err, "member %s", name)
		}
		result[name] = val
	}
	return result, nil
}
