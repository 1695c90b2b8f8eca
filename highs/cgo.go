//go:build cgo && (linux || darwin)

package highs

/*
#cgo pkg-config: highs

#include <stdlib.h>
#include <stdint.h>
#include "interfaces/highs_c_api.h"
*/
import "C"
import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/bartolsthoorn/clonereg/milp"
)

// status represents the result status of a HiGHS call.
type status int

const (
	statusError   status = -1
	statusOK      status = 0
	statusWarning status = 1
)

func (s status) String() string {
	switch s {
	case statusError:
		return "Error"
	case statusOK:
		return "OK"
	case statusWarning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// callError represents a failed HiGHS C API call.
type callError struct {
	Op     string // C API call that failed (e.g., "Highs_passModel")
	Status status
	Msg    string
}

func (e *callError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("highs: %s failed: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("highs: %s failed with status %s", e.Op, e.Status)
}

// check returns a callError if st is neither OK nor Warning.
func check(op string, st C.HighsInt) error {
	s := status(st)
	if s == statusOK || s == statusWarning {
		return nil
	}
	return &callError{Op: op, Status: s}
}

// modelStatusFromC folds the HiGHS model status onto the milp taxonomy.
func modelStatusFromC(st C.HighsInt) milp.Status {
	switch st {
	case C.kHighsModelStatusOptimal:
		return milp.StatusOptimal
	case C.kHighsModelStatusInfeasible:
		return milp.StatusInfeasible
	case C.kHighsModelStatusUnboundedOrInfeasible:
		return milp.StatusUnboundedOrInfeasible
	case C.kHighsModelStatusUnbounded:
		return milp.StatusUnbounded
	case C.kHighsModelStatusTimeLimit,
		C.kHighsModelStatusIterationLimit,
		C.kHighsModelStatusObjectiveBound,
		C.kHighsModelStatusObjectiveTarget:
		return milp.StatusLimit
	case C.kHighsModelStatusNotset:
		return milp.StatusNotSet
	default:
		return milp.StatusError
	}
}

func varTypeToC(k milp.VarKind) C.HighsInt {
	if k == milp.Binary {
		return C.kHighsVarTypeInteger
	}
	return C.kHighsVarTypeContinuous
}

// instance owns one native HiGHS object.
//
// Always call close() when done; a finalizer is only a safety net.
type instance struct {
	ptr unsafe.Pointer
}

func newInstance() (*instance, error) {
	ptr := C.Highs_create()
	if ptr == nil {
		return nil, &callError{Op: "Highs_create", Status: statusError, Msg: "failed to create HiGHS instance"}
	}
	h := &instance{ptr: ptr}
	runtime.SetFinalizer(h, (*instance).close)
	return h, nil
}

// close releases the native object. It is safe to call close multiple times.
func (h *instance) close() {
	if h.ptr != nil {
		C.Highs_destroy(h.ptr)
		h.ptr = nil
	}
}

func (h *instance) setBoolOption(name string, value bool) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var cVal C.HighsInt
	if value {
		cVal = 1
	}
	return check("Highs_setBoolOptionValue("+name+")", C.Highs_setBoolOptionValue(h.ptr, cName, cVal))
}

func (h *instance) setIntOption(name string, value int) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	return check("Highs_setIntOptionValue("+name+")", C.Highs_setIntOptionValue(h.ptr, cName, C.HighsInt(value)))
}

func (h *instance) setFloatOption(name string, value float64) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	return check("Highs_setDoubleOptionValue("+name+")", C.Highs_setDoubleOptionValue(h.ptr, cName, C.double(value)))
}

func (h *instance) setStringOption(name, value string) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cVal := C.CString(value)
	defer C.free(unsafe.Pointer(cVal))

	return check("Highs_setStringOptionValue("+name+")", C.Highs_setStringOptionValue(h.ptr, cName, cVal))
}

// passModel hands a complete row-wise model to HiGHS in one call.
func (h *instance) passModel(lp *rowwise) error {
	sense := C.kHighsObjSenseMinimize
	if lp.maximize {
		sense = C.kHighsObjSenseMaximize
	}

	cAStart := make([]C.HighsInt, len(lp.start))
	for i, v := range lp.start {
		cAStart[i] = C.HighsInt(v)
	}
	cAIndex := make([]C.HighsInt, len(lp.index))
	for i, v := range lp.index {
		cAIndex[i] = C.HighsInt(v)
	}
	cIntegrality := make([]C.HighsInt, len(lp.kinds))
	for i, k := range lp.kinds {
		cIntegrality[i] = varTypeToC(k)
	}

	var pRowLower, pRowUpper *C.double
	var pAStart, pAIndex *C.HighsInt
	var pAValue *C.double
	var pIntegrality *C.HighsInt

	if len(lp.rowLower) > 0 {
		pRowLower = (*C.double)(&lp.rowLower[0])
		pRowUpper = (*C.double)(&lp.rowUpper[0])
	}
	if len(cAStart) > 0 {
		pAStart = &cAStart[0]
	}
	if len(cAIndex) > 0 {
		pAIndex = &cAIndex[0]
		pAValue = (*C.double)(&lp.value[0])
	}
	if lp.hasInteger() {
		pIntegrality = &cIntegrality[0]
	}

	st := C.Highs_passModel(h.ptr,
		C.HighsInt(lp.numCol), C.HighsInt(lp.numRow),
		C.HighsInt(len(lp.value)), 0, // num_nz, q_num_nz
		C.kHighsMatrixFormatRowwise, C.kHighsHessianFormatTriangular,
		C.HighsInt(sense), C.double(0),
		(*C.double)(&lp.colCost[0]), (*C.double)(&lp.colLower[0]), (*C.double)(&lp.colUpper[0]),
		pRowLower, pRowUpper,
		pAStart, pAIndex, pAValue,
		nil, nil, nil, // Hessian pointers
		pIntegrality)
	return check("Highs_passModel", st)
}

// run solves the passed model and returns the resulting model status.
func (h *instance) run() (milp.Status, error) {
	if st := C.Highs_run(h.ptr); status(st) == statusError {
		return milp.StatusError, check("Highs_run", st)
	}
	return modelStatusFromC(C.Highs_getModelStatus(h.ptr)), nil
}

// solution copies the primal column values and the objective value.
func (h *instance) solution(numCol, numRow int) ([]float64, float64) {
	colValue := make([]float64, numCol)
	colDual := make([]float64, numCol)
	rowValue := make([]float64, numRow)
	rowDual := make([]float64, numRow)

	var pRowValue, pRowDual *C.double
	if numRow > 0 {
		pRowValue = (*C.double)(&rowValue[0])
		pRowDual = (*C.double)(&rowDual[0])
	}
	C.Highs_getSolution(h.ptr,
		(*C.double)(&colValue[0]), (*C.double)(&colDual[0]),
		pRowValue, pRowDual)

	return colValue, float64(C.Highs_getObjectiveValue(h.ptr))
}
