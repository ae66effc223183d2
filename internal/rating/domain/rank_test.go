package rating

import (
	"testing"
)

func TestRankAssignsConsecutiveRanks(t *testing.T) {
	costs := []CompanyCost{
		{Name: "C", TotalCost: 300},
		{Name: "A", TotalCost: 100},
		{Name: "B", TotalCost: 200},
	}
	ranking, err := Rank(costs, "")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	for i, want := range []string{"A", "B", "C"} {
		if ranking.Costs[i].Name != want || ranking.Costs[i].Rank != i+1 {
			t.Fatalf("position %d: got %+v", i, ranking.Costs[i])
		}
	}
	if costs[0].Rank != 0 {
		t.Fatalf("expected input slice untouched")
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	costs := []CompanyCost{
		{Name: "first", TotalCost: 150},
		{Name: "cheap", TotalCost: 90},
		{Name: "second", TotalCost: 150},
	}
	ranking, _ := Rank(costs, "")
	if ranking.Costs[1].Name != "first" || ranking.Costs[1].Rank != 2 {
		t.Fatalf("expected first tie at rank 2, got %+v", ranking.Costs[1])
	}
	if ranking.Costs[2].Name != "second" || ranking.Costs[2].Rank != 3 {
		t.Fatalf("expected second tie at rank 3, got %+v", ranking.Costs[2])
	}
}

func TestRankSavingsAgainstCurrentPlan(t *testing.T) {
	costs := []CompanyCost{
		{Name: DefaultCurrentPlanName, TotalCost: 950.5},
		{Name: "Rival", TotalCost: 800.25},
	}
	ranking, _ := Rank(costs, DefaultCurrentPlanName)
	if !ranking.Current.Found || ranking.Current.Rank != 2 {
		t.Fatalf("expected current plan found at rank 2, got %+v", ranking.Current)
	}
	if ranking.Best.Name != "Rival" || !near(ranking.Best.Savings, 150.25) {
		t.Fatalf("unexpected best option: %+v", ranking.Best)
	}
}

func TestRankSavingsZeroWhenCurrentIsBest(t *testing.T) {
	costs := []CompanyCost{
		{Name: "Mine", TotalCost: 500},
		{Name: "Other", TotalCost: 600},
	}
	ranking, _ := Rank(costs, "Mine")
	if ranking.Best.Savings != 0 || !ranking.Current.Found {
		t.Fatalf("expected zero savings, got %+v", ranking)
	}
}

func TestRankWithoutCurrentPlan(t *testing.T) {
	ranking, _ := Rank([]CompanyCost{{Name: "Only", TotalCost: 10}}, "Tu Compañía Actual")
	if ranking.Current.Found || ranking.Best.Savings != 0 {
		t.Fatalf("expected no current plan and zero savings, got %+v", ranking)
	}
	if ranking.Current.Name != "Tu Compañía Actual" {
		t.Fatalf("expected requested name echoed, got %q", ranking.Current.Name)
	}
}

func TestRankEmpty(t *testing.T) {
	if _, err := Rank(nil, ""); err == nil {
		t.Fatalf("expected error for empty costs")
	}
}
