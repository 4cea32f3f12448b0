package wire

import "testing"

func TestResultKindStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		kind   ResultKind
		op     Operation
		status Status
	}{
		{"CompletedRead", ResultCompleted, OpRead, StatusContent},
		{"CompletedDiscover", ResultCompleted, OpDiscover, StatusContent},
		{"CompletedWrite", ResultCompleted, OpWrite, StatusChanged},
		{"CompletedExecute", ResultCompleted, OpExecute, StatusChanged},
		{"CompletedOtherOp", ResultCompleted, OpQueryInstanceCount, StatusBadRequest},
		{"InvalidState", ResultInvalidState, OpRead, StatusServiceUnavailable},
		{"InvalidArgument", ResultInvalidArgument, OpWrite, StatusBadRequest},
		{"NotSupported", ResultNotSupported, OpExecute, StatusNotFound},
		{"NotImplemented", ResultNotImplemented, OpRead, StatusNotImplemented},
		{"IncorrectRange", ResultIncorrectRange, OpWrite, StatusInternalServerError},
		{"GeneralError", ResultGeneralError, OpRead, StatusInternalServerError},
		{"Overflow", ResultOverflow, OpRead, StatusInternalServerError},
		{"Unrecognized", ResultKind(200), OpRead, StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.kind.Status(tc.op); got != tc.status {
				t.Errorf("expected %v, got %v", tc.status, got)
			}
		})
	}
}

func TestStatusClasses(t *testing.T) {
	success := []Status{StatusCreated, StatusDeleted, StatusChanged, StatusContent}
	for _, s := range success {
		if !s.IsSuccess() {
			t.Errorf("expected %v to be success", s)
		}
	}

	errors := []Status{
		StatusBadRequest, StatusNotFound, StatusMethodNotAllowed,
		StatusInternalServerError, StatusNotImplemented, StatusServiceUnavailable,
	}
	for _, s := range errors {
		if !s.IsError() {
			t.Errorf("expected %v to be an error", s)
		}
	}
}

func TestStatusString(t *testing.T) {
	if got := StatusContent.String(); got != "2.05 Content" {
		t.Errorf("expected 2.05 Content, got %s", got)
	}
	if got := StatusNotFound.String(); got != "4.04 Not Found" {
		t.Errorf("expected 4.04 Not Found, got %s", got)
	}
}
