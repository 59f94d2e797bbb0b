package commerce

import (
	"encoding/json"
	"testing"
)

func TestFulfilmentTypeDecodesAllThreeShapes(t *testing.T) {
	cases := []struct {
		in   string
		want FulfilmentType
	}{
		{`"FULFILMENT_TYPE_PHYSICAL"`, FulfilmentTypePhysical},
		{`"1"`, FulfilmentTypePhysical},
		{`1`, FulfilmentTypePhysical},
		{`"FULFILMENT_TYPE_DIGITAL"`, FulfilmentTypeDigital},
		{`"2"`, FulfilmentTypeDigital},
		{`2`, FulfilmentTypeDigital},
		{`"FULFILMENT_TYPE_NONE"`, FulfilmentTypeNone},
		{`"3"`, FulfilmentTypeNone},
		{`3`, FulfilmentTypeNone},
		{`"FULFILMENT_TYPE_UNSPECIFIED"`, FulfilmentTypeUnspecified},
		{`"0"`, FulfilmentTypeUnspecified},
		{`0`, FulfilmentTypeUnspecified},
		{`"bogus"`, FulfilmentTypeUnspecified},
		{`99`, FulfilmentTypeUnspecified},
		{`-1`, FulfilmentTypeUnspecified},
		{`null`, FulfilmentTypeUnspecified},
	}
	for _, c := range cases {
		var got FulfilmentType
		if err := json.Unmarshal([]byte(c.in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("unmarshal %s = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFulfilmentTypeMarshalRoundTrips(t *testing.T) {
	for _, ft := range []FulfilmentType{
		FulfilmentTypeUnspecified,
		FulfilmentTypePhysical,
		FulfilmentTypeDigital,
		FulfilmentTypeNone,
	} {
		b, err := json.Marshal(ft)
		if err != nil {
			t.Fatalf("marshal %v: %v", ft, err)
		}
		var got FulfilmentType
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if got != ft {
			t.Errorf("round trip %v via %s = %v", ft, b, got)
		}
	}
}

func TestProductVariantDecodesProtojsonInts(t *testing.T) {
	in := `{
		"id": "var-1",
		"productId": "prod-1",
		"name": "Large",
		"price": {"currencyCode": "USD", "units": "10", "nanos": 500000000},
		"stockQuantity": "25"
	}`
	var v ProductVariant
	if err := json.Unmarshal([]byte(in), &v); err != nil {
		t.Fatalf("unmarshal variant: %v", err)
	}
	if v.StockQuantity != 25 {
		t.Errorf("stockQuantity = %d, want 25", v.StockQuantity)
	}
	if v.Price == nil || v.Price.Units != 10 || v.Price.Nanos != 500_000_000 {
		t.Errorf("price = %+v", v.Price)
	}
}

func TestCartDecodesLineQuantityShapes(t *testing.T) {
	in := `{"id":"cart-1","lines":[
		{"id":"line-1","productVariantId":"var-1","quantity":"3"},
		{"id":"line-2","productVariantId":"var-2","quantity":2}
	]}`
	var c Cart
	if err := json.Unmarshal([]byte(in), &c); err != nil {
		t.Fatalf("unmarshal cart: %v", err)
	}
	if len(c.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 3 || c.Lines[1].Quantity != 2 {
		t.Errorf("quantities = %d, %d", c.Lines[0].Quantity, c.Lines[1].Quantity)
	}
}
