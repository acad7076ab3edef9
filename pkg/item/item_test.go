package item

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleResponse = `{
  "success": true,
  "main": {"request_id": "req-42"},
  "filters": {
    "stars": [{"id": 4, "name": "4"}, {"id": 5, "name": "5"}],
    "wifi": [{"id": "FREE_ALL", "name": "free"}, {"id": "NONE", "name": "none"}]
  },
  "hotels": [
    {
      "hotel": {
        "id": 101, "name": "Sea Breeze", "city": "Sochi", "link": "hotels/101",
        "rating": 4.6, "stars": 4, "place_id": 7,
        "images": [{"x245x240": "https://img/101.jpg"}],
        "features": {"line": 1, "wi_fi": "FREE_ALL", "beach_distance": 120}
      },
      "min_price": 52000,
      "pansion_prices": {"BB": 52000, "AI": 61000},
      "operators": [3, 9],
      "extras": {"previous_price": 65000}
    },
    {
      "hotel": {"id": "h-2", "name": "Broken", "rating": "n/a", "stars": "3", "features": {"line": "first"}},
      "min_price": "41000",
      "operators": [1, "x"]
    },
    {
      "hotel": {"id": "h-3", "name": "Not A Number", "rating": "NaN", "stars": "Inf"},
      "min_price": "NaN",
      "extras": {"previous_price": "-Inf"}
    },
    42
  ]
}`

func TestDecodeFlattensOffers(t *testing.T) {
	resp, err := Decode(strings.NewReader(sampleResponse))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.RequestID != "req-42" {
		t.Fatalf("unexpected envelope: success=%v request=%q", resp.Success, resp.RequestID)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("expected 3 items (non-object offer skipped), got %d", len(resp.Items))
	}

	want := Item{
		ID:            "101",
		Name:          "Sea Breeze",
		City:          "Sochi",
		Link:          "hotels/101",
		Image:         "https://img/101.jpg",
		Rating:        Float(4.6),
		Price:         Float(52000),
		PreviousPrice: Float(65000),
		Stars:         Int(4),
		Line:          Int(1),
		RegionID:      Int(7),
		BeachDistance: Int(120),
		WiFi:          "FREE_ALL",
		MealPlans:     []string{"AI", "BB"},
		Operators:     []int{3, 9},
	}
	if diff := cmp.Diff(want, resp.Items[0]); diff != "" {
		t.Fatalf("first item mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]FilterOption{{ID: "4", Name: "4"}, {ID: "5", Name: "5"}}, resp.Filters["stars"]); diff != "" {
		t.Fatalf("stars filter options mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLeavesMalformedFieldsMissing(t *testing.T) {
	resp, err := Decode(strings.NewReader(sampleResponse))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	broken := resp.Items[1]
	if broken.ID != "h-2" || broken.Name != "Broken" {
		t.Fatalf("unexpected identity: %+v", broken)
	}
	if broken.Rating != nil {
		t.Fatalf("expected rating missing, got %v", *broken.Rating)
	}
	if broken.Line != nil {
		t.Fatalf("expected line missing, got %v", *broken.Line)
	}
	if broken.Stars == nil || *broken.Stars != 3 {
		t.Fatalf("expected numeric string stars decoded, got %v", broken.Stars)
	}
	if broken.Price == nil || *broken.Price != 41000 {
		t.Fatalf("expected numeric string price decoded, got %v", broken.Price)
	}
	if diff := cmp.Diff([]int{1}, broken.Operators); diff != "" {
		t.Fatalf("operators mismatch (-want +got):\n%s", diff)
	}

	nan := resp.Items[2]
	if nan.Rating != nil || nan.Price != nil || nan.Stars != nil || nan.PreviousPrice != nil {
		t.Fatalf("expected non-finite numbers left missing: %+v", nan)
	}
}

func TestDecodeRejectsInvalidEnvelope(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"hotels": [`)); err == nil {
		t.Fatalf("expected error for truncated document")
	}
}

func TestDiscount(t *testing.T) {
	cases := []struct {
		name string
		it   Item
		want int
	}{
		{name: "computed", it: Item{Price: Float(80), PreviousPrice: Float(100)}, want: 20},
		{name: "no previous", it: Item{Price: Float(80)}, want: 5},
		{name: "price went up", it: Item{Price: Float(120), PreviousPrice: Float(100)}, want: 5},
	}
	for _, tc := range cases {
		if got := tc.it.Discount(); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestPartnerLink(t *testing.T) {
	it := Item{ID: "101", Link: "hotels/101"}
	if got := it.PartnerLink("http://localhost:8000", ""); got != "http://localhost:8000/hotels/101?hotel_ids=101" {
		t.Fatalf("unexpected link without request: %s", got)
	}
	got := it.PartnerLink("http://localhost:8000", "req-42")
	if got != "http://localhost:8000/hotels/101?hotel_ids=101&request_id=req-42" {
		t.Fatalf("unexpected link with request: %s", got)
	}
}
