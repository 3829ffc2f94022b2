package symbols

import (
	"fmt"

	"qres/internal/diag"
	"qres/internal/source"
)

// ErrorKind enumerates resolution failures.
type ErrorKind uint8

const (
	ErrAmbiguous ErrorKind = iota + 1
	ErrAmbiguousPrelude
	ErrDuplicate
	ErrDuplicateBinding
	ErrDuplicateIntrinsic
	ErrNotFound
	ErrNotAvailable
	ErrUnimplemented
)

func (k ErrorKind) String() string {
	switch k {
	case ErrAmbiguous:
		return "Ambiguous"
	case ErrAmbiguousPrelude:
		return "AmbiguousPrelude"
	case ErrDuplicate:
		return "Duplicate"
	case ErrDuplicateBinding:
		return "DuplicateBinding"
	case ErrDuplicateIntrinsic:
		return "DuplicateIntrinsic"
	case ErrNotFound:
		return "NotFound"
	case ErrNotAvailable:
		return "NotAvailable"
	case ErrUnimplemented:
		return "Unimplemented"
	default:
		return "invalid"
	}
}

// Error is a non-fatal resolution error. Which fields are set depends on Kind:
//
//	Ambiguous         First/Second are the opened namespaces, FirstSpan/SecondSpan their opens
//	AmbiguousPrelude  First/Second are the prelude namespaces, sorted
//	Duplicate         Namespace is the namespace of the clashing declaration
//	NotAvailable      Hint is the former fully qualified name
type Error struct {
	Kind       ErrorKind
	Name       string
	Span       source.Span
	Namespace  string
	First      string
	Second     string
	FirstSpan  source.Span
	SecondSpan source.Span
	Hint       string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrAmbiguous:
		return fmt.Sprintf("`%s` could refer to the item in `%s` or `%s`", e.Name, e.First, e.Second)
	case ErrAmbiguousPrelude:
		return fmt.Sprintf("`%s` could refer to the item in `%s` or an item in `%s`", e.Name, e.First, e.Second)
	case ErrDuplicate:
		return fmt.Sprintf("duplicate declaration of `%s` in namespace `%s`", e.Name, e.Namespace)
	case ErrDuplicateBinding:
		return fmt.Sprintf("duplicate name `%s` in pattern", e.Name)
	case ErrDuplicateIntrinsic:
		return fmt.Sprintf("duplicate intrinsic `%s`", e.Name)
	case ErrNotFound, ErrNotAvailable:
		return fmt.Sprintf("`%s` not found", e.Name)
	case ErrUnimplemented:
		return fmt.Sprintf("use of unimplemented item `%s`", e.Name)
	default:
		return fmt.Sprintf("resolution error on `%s`", e.Name)
	}
}

// Help returns the advisory text shown under the message, if any.
func (e *Error) Help() string {
	switch e.Kind {
	case ErrAmbiguousPrelude:
		return "both namespaces are implicitly opened by the prelude"
	case ErrDuplicateBinding:
		return "a name cannot shadow another name in the same pattern"
	case ErrDuplicateIntrinsic:
		return "each callable declared as `body intrinsic` must have a globally unique name"
	case ErrNotAvailable:
		return fmt.Sprintf("found a matching item `%s` that is not available for the current compilation configuration", e.Hint)
	case ErrUnimplemented:
		return "this item is not implemented and cannot be used"
	default:
		return ""
	}
}

// Code maps the error to its diagnostic code.
func (e *Error) Code() diag.Code {
	switch e.Kind {
	case ErrAmbiguous:
		return diag.ResAmbiguous
	case ErrAmbiguousPrelude:
		return diag.ResAmbiguousPrelude
	case ErrDuplicate:
		return diag.ResDuplicate
	case ErrDuplicateBinding:
		return diag.ResDuplicateBinding
	case ErrDuplicateIntrinsic:
		return diag.ResDuplicateIntrinsic
	case ErrNotFound:
		return diag.ResNotFound
	case ErrNotAvailable:
		return diag.ResNotAvailable
	case ErrUnimplemented:
		return diag.ResUnimplemented
	default:
		return diag.UnknownCode
	}
}

// Report emits every error as a diagnostic. Unimplemented uses are advisory
// and go out as warnings.
func Report(r diag.Reporter, errs []*Error) {
	for _, err := range errs {
		report := diag.ReportError
		if err.Kind == ErrUnimplemented {
			report = diag.ReportWarning
		}
		b := report(r, err.Code(), err.Span, err.Error())
		if err.Kind == ErrAmbiguous {
			b.WithNote(err.FirstSpan, "found in this namespace").
				WithNote(err.SecondSpan, "and also in this namespace")
		}
		if help := err.Help(); help != "" {
			b.WithNote(err.Span, "help: "+help)
		}
		b.Emit()
	}
}

func notFound(name string, span source.Span) *Error {
	return &Error{Kind: ErrNotFound, Name: name, Span: span}
}
