package services

import "testing"

func TestNormalizeCategoryOverrides(t *testing.T) {
	cases := []struct {
		name string
		in   CategoryInput
		want string
	}{
		{
			name: "uber eats beats uber",
			in:   CategoryInput{MerchantName: "Uber Eats"},
			want: "Food",
		},
		{
			name: "uber ride is transportation",
			in:   CategoryInput{MerchantName: "Uber Trip 5XK2"},
			want: "Transportation",
		},
		{
			name: "confirmation suffix stripped before matching",
			in:   CategoryInput{MerchantName: "Uber Eats Order 123 Conf#456"},
			want: "Food",
		},
		{
			name: "match is case insensitive",
			in:   CategoryInput{MerchantName: "STARBUCKS STORE 0441"},
			want: "Coffee",
		},
		{
			name: "falls back to transaction name when merchant empty",
			in:   CategoryInput{Name: "NETFLIX.COM"},
			want: "Subscriptions",
		},
		{
			name: "income keywords",
			in:   CategoryInput{Name: "ACME CORP PAYROLL", Amount: -2500},
			want: "Income",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeCategory(tc.in); got != tc.want {
				t.Fatalf("NormalizeCategory(%+v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeCategoryProviderFallback(t *testing.T) {
	got := NormalizeCategory(CategoryInput{
		MerchantName: "Some Obscure Vendor",
		Categories:   []string{"Travel", "Taxi"},
	})
	if got != "Travel > Taxi" {
		t.Fatalf("expected provider taxonomy join, got %q", got)
	}
}

func TestNormalizeCategoryUncategorized(t *testing.T) {
	got := NormalizeCategory(CategoryInput{MerchantName: "Some Obscure Vendor"})
	if got != "Uncategorized" {
		t.Fatalf("expected Uncategorized, got %q", got)
	}

	got = NormalizeCategory(CategoryInput{})
	if got != "Uncategorized" {
		t.Fatalf("expected Uncategorized for empty input, got %q", got)
	}
}
