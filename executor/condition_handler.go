package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"github.com/flowbot-io/flowbot/logger"
	"github.com/flowbot-io/flowbot/model"
	"github.com/flowbot-io/flowbot/validate"
	"go.uber.org/zap"
)

const OPERATOR_EQUALS = "equals"
const OPERATOR_GREATER = "greater"
const OPERATOR_LESS = "less"
const OPERATOR_CONTAINS = "contains"
const OPERATOR_EXPRESSION = "expression"

var _ Handler = new(conditionHandler)

type conditionHandler struct {
	baseHandler
}

func NewConditionHandler() *conditionHandler {
	return &conditionHandler{baseHandler{model.NODE_TYPE_CONDITION}}
}

func (h *conditionHandler) Validate(node model.Node) error {
	if node.Data.Operator == OPERATOR_EXPRESSION && len(node.Data.Expression) == 0 {
		return fmt.Errorf("nodeId=%s, expression can not be empty", node.Id)
	}
	return nil
}

// Execute picks output 0 (true) or 1 (false). Conditions never produce a bot
// message.
func (h *conditionHandler) Execute(ctx context.Context, ec *ExecContext, node model.Node) (Result, error) {
	outputIndex := 1
	if h.evaluate(ec, node) {
		outputIndex = 0
	}
	return Result{NextNodeId: h.next(ec, node.Id, outputIndex)}, nil
}

func (h *conditionHandler) evaluate(ec *ExecContext, node model.Node) bool {
	if node.Data.Operator == OPERATOR_EXPRESSION {
		return h.evaluateExpression(ec, node)
	}
	left := ec.Vars.Get(node.Data.Variable)
	right := node.Data.Value
	switch node.Data.Operator {
	case OPERATOR_EQUALS:
		return looseEquals(left, right)
	case OPERATOR_GREATER:
		lf, lok := toFloat(left)
		rf, rok := toFloat(right)
		return lok && rok && lf > rf
	case OPERATOR_LESS:
		lf, lok := toFloat(left)
		rf, rok := toFloat(right)
		return lok && rok && lf < rf
	case OPERATOR_CONTAINS:
		return strings.Contains(strings.ToLower(toString(left)), strings.ToLower(toString(right)))
	}
	// Unknown operator evaluates false.
	return false
}

func (h *conditionHandler) evaluateExpression(ec *ExecContext, node model.Node) bool {
	vm := goja.New()
	if err := vm.Set("$", ec.Vars.Snapshot()); err != nil {
		return false
	}
	value, err := vm.RunString(node.Data.Expression)
	if err != nil {
		logger.Warn("error evaluating condition expression", zap.String("nodeId", node.Id), zap.Error(err))
		return false
	}
	return value.ToBoolean()
}

// looseEquals compares two strings exactly and mixed types numerically when
// both sides carry a number, so "5" equals 5 but "5" does not equal "5.0".
func looseEquals(left any, right any) bool {
	ls, lIsString := left.(string)
	rs, rIsString := right.(string)
	if lIsString && rIsString {
		return ls == rs
	}
	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if lok && rok {
		return lf == rf
	}
	return toString(left) == toString(right)
}

func toString(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		// Numeric strings parse by their leading number, "20 years" is 20.
		return validate.ParseNumber(v)
	}
	return 0, false
}
