package validate_test

import (
	"testing"

	"github.com/vendralabs/vendra/pkg/validate"
)

type productInput struct {
	Name     string  `json:"name"     validate:"required,max=255"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		Name:     "Widget",
		Quantity: 10,
		Price:    5.00,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{Quantity: 1, Price: 2})
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
}

func TestZeroQuantityIsValid(t *testing.T) {
	// gte=0 must accept zero — products can be listed before they are stocked.
	errs := validate.Struct(productInput{Name: "Widget", Quantity: 0, Price: 1})
	if validate.HasErrors(errs) {
		t.Errorf("expected quantity 0 to pass, got: %v", errs)
	}
}

func TestNegativeQuantityFails(t *testing.T) {
	errs := validate.Struct(productInput{Name: "Widget", Quantity: -1, Price: 1})
	if _, ok := errs["quantity"]; !ok {
		t.Error("expected negative quantity to fail gte=0")
	}
}

func TestPriceMustBePositive(t *testing.T) {
	errs := validate.Struct(productInput{Name: "Widget", Quantity: 1, Price: 0})
	if _, ok := errs["price"]; !ok {
		t.Error("expected zero price to fail")
	}
	errs = validate.Struct(productInput{Name: "Widget", Quantity: 1, Price: -3.5})
	if _, ok := errs["price"]; !ok {
		t.Error("expected negative price to fail")
	}
}

func TestGtRule(t *testing.T) {
	type in struct {
		Qty int `json:"quantitySold" validate:"required,gt=0"`
	}
	if errs := validate.Struct(in{Qty: 0}); !validate.HasErrors(errs) {
		t.Error("expected quantitySold 0 to fail")
	}
	if errs := validate.Struct(in{Qty: 3}); validate.HasErrors(errs) {
		t.Errorf("expected quantitySold 3 to pass, got: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Note string `json:"note" validate:"nullable,min=3"`
	}
	if errs := validate.Struct(in{Note: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Note: "ab"}); !validate.HasErrors(errs) {
		t.Error("expected short note to fail min=3")
	}
}

func TestMinMaxOnStrings(t *testing.T) {
	type in struct {
		Username string `json:"username" validate:"required,min=3,max=30"`
		Password string `json:"password" validate:"required,min=6"`
	}
	errs := validate.Struct(in{Username: "ab", Password: "short"})
	if _, ok := errs["username"]; !ok {
		t.Error("expected username min=3 to fail")
	}
	if _, ok := errs["password"]; !ok {
		t.Error("expected password min=6 to fail")
	}
	if errs := validate.Struct(in{Username: "clerk01", Password: "secret123"}); validate.HasErrors(errs) {
		t.Errorf("expected valid credentials to pass: %v", errs)
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,gt=0"`
	}
	errs := validate.Struct(in{})
	if errs["price"] != "The price field is required." {
		t.Errorf("expected required message first, got %q", errs["price"])
	}
}
