package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ConfigTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_returns", createSetReturns)
	registry.Register("adjust_returns", createAdjustReturns)
	registry.Register("set_withdrawal_rate", createSetWithdrawalRate)
	registry.Register("set_income_target", createSetIncomeTarget)
	registry.Register("scale_income_target", createScaleIncomeTarget)
	registry.Register("set_initial_capital", createSetInitialCapital)
	registry.Register("set_age", createSetAge)
	registry.Register("set_starting_year", createSetStartingYear)

	// Cash flow transforms
	registry.Register("scale_spendings", scaleFactory(domain.ListSpendings))
	registry.Register("scale_incomes", scaleFactory(domain.ListIncomes))
	registry.Register("remove_cash_flow", createRemoveCashFlow)
	registry.Register("add_one_time", createAddOneTime)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ConfigTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "scale_spendings:factor=0.9"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ConfigTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses a list of specs, failing on the first invalid one
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ConfigTransform, error) {
	transforms := make([]ConfigTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	s, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createSetReturns(params map[string]string) (ConfigTransform, error) {
	rate, err := decimalParam("set_returns", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetReturns{Rate: rate}, nil
}

func createAdjustReturns(params map[string]string) (ConfigTransform, error) {
	delta, err := decimalParam("adjust_returns", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustReturns{Delta: delta}, nil
}

func createSetWithdrawalRate(params map[string]string) (ConfigTransform, error) {
	rate, err := decimalParam("set_withdrawal_rate", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetWithdrawalRate{Rate: rate}, nil
}

func createSetIncomeTarget(params map[string]string) (ConfigTransform, error) {
	target, err := decimalParam("set_income_target", params, "target")
	if err != nil {
		return nil, err
	}
	return &SetIncomeTarget{Target: target}, nil
}

func createScaleIncomeTarget(params map[string]string) (ConfigTransform, error) {
	factor, err := decimalParam("scale_income_target", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleIncomeTarget{Factor: factor}, nil
}

func createSetInitialCapital(params map[string]string) (ConfigTransform, error) {
	amount, err := decimalParam("set_initial_capital", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetInitialCapital{Amount: amount}, nil
}

func createSetAge(params map[string]string) (ConfigTransform, error) {
	if s, ok := params["age"]; ok && strings.EqualFold(s, "none") {
		return &SetAge{}, nil
	}
	age, err := intParam("set_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetAge{Age: &age}, nil
}

func createSetStartingYear(params map[string]string) (ConfigTransform, error) {
	year, err := intParam("set_starting_year", params, "year")
	if err != nil {
		return nil, err
	}
	return &SetStartingYear{Year: year}, nil
}

func scaleFactory(list string) TransformFactory {
	return func(params map[string]string) (ConfigTransform, error) {
		factor, err := decimalParam("scale_"+list, params, "factor")
		if err != nil {
			return nil, err
		}
		return &ScaleCashFlows{List: list, Factor: factor}, nil
	}
}

func createRemoveCashFlow(params map[string]string) (ConfigTransform, error) {
	list, ok := params["list"]
	if !ok {
		return nil, fmt.Errorf("remove_cash_flow requires 'list' parameter")
	}
	id, name := params["id"], params["name"]
	if id == "" && name == "" {
		return nil, fmt.Errorf("remove_cash_flow requires 'id' or 'name' parameter")
	}
	return &RemoveCashFlow{List: list, ID: id, Flow: name}, nil
}

func createAddOneTime(params map[string]string) (ConfigTransform, error) {
	list, ok := params["list"]
	if !ok {
		return nil, fmt.Errorf("add_one_time requires 'list' parameter")
	}
	amount, err := decimalParam("add_one_time", params, "amount")
	if err != nil {
		return nil, err
	}

	t := &AddOneTimeCashFlow{List: list, Flow: params["name"], Amount: amount}
	switch {
	case params["year"] != "":
		if t.Year, err = intParam("add_one_time", params, "year"); err != nil {
			return nil, err
		}
	case params["offset"] != "":
		if t.Offset, err = intParam("add_one_time", params, "offset"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("add_one_time requires 'year' or 'offset' parameter")
	}
	if t.Flow == "" {
		t.Flow = "One-time " + list
	}
	return t, nil
}
