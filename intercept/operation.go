package intercept

import (
	"reflect"
	"runtime"
)

// OperationID names a designated operation independently of any reference to it.
type OperationID string

// OperationOf derives the identity of fn from its declaration and signature.
// Closures built from the same function literal share one identity.
// Instantiations of a generic function are told apart by their signatures;
// ones whose signatures match need an explicit OperationID.
// It returns "" when fn is not a non-nil function.
func OperationOf(fn any) OperationID {
	if fn == nil {
		return ""
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	return OperationID(f.Name() + ":" + v.Type().String())
}
