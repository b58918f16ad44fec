package common

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
)

type onCancel func()
type onSignal func(os.Signal)

// TerminateIf calls exactly one of the callbacks, whichever comes first.
func TerminateIf(ctx context.Context, onCancel onCancel, onSignal onSignal) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		defer signal.Stop(sig)
		select {
		case <-ctx.Done():
			onCancel()
		case s := <-sig:
			onSignal(s)
		}
	}()
}

func ErrorToString(errs []error) string {
	var lines []string
	for _, err := range errs {
		if err != nil {
			lines = append(lines, err.Error())
		}
	}
	return strings.Join(lines, "\n\t")
}

// Validate requires every numeric field to be positive and every string,
// slice or map to be non-empty, recursing into nested structs.
func Validate(v interface{}) []error {
	var errors []error
	gatherError := func(fieldIndex int, supported bool) {
		var e error
		if supported {
			e = fmt.Errorf("wrong %s[%s]", reflect.TypeOf(v).Name(),
				reflect.TypeOf(v).Field(fieldIndex).Name)
		} else {
			e = fmt.Errorf("unimplemented type %d for %s", reflect.ValueOf(v).Field(fieldIndex).Kind(),
				strings.ToLower(reflect.TypeOf(v).Field(fieldIndex).Name))
		}
		errors = append(errors, e)
	}
	for i := 0; i < reflect.TypeOf(v).NumField(); i++ {
		switch reflect.ValueOf(v).Field(i).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if reflect.ValueOf(v).Field(i).Int() <= 0 {
				gatherError(i, true)
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if reflect.ValueOf(v).Field(i).Uint() == 0 {
				gatherError(i, true)
			}
		case reflect.String, reflect.Array, reflect.Slice, reflect.Map:
			if reflect.ValueOf(v).Field(i).Len() == 0 {
				gatherError(i, true)
			}
		case reflect.Struct:
			errors = append(errors, Validate(reflect.ValueOf(v).Field(i).Interface())...)
		default:
			gatherError(i, false)
		}
	}
	return errors
}

func Stringify(v interface{}) string {
	s := "\n" + reflect.TypeOf(v).Name()
	for i := 0; i < reflect.TypeOf(v).NumField(); i++ {
		switch reflect.ValueOf(v).Field(i).Kind() {
		case reflect.Struct, reflect.Interface:
			s += Stringify(reflect.ValueOf(v).Field(i).Interface())
		default:
			s += fmt.Sprintf("\n\t%s: %v", reflect.TypeOf(v).Field(i).Name,
				reflect.ValueOf(v).Field(i).Interface())
		}
	}
	return s
}
