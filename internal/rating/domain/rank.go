package rating

import (
	"math"
	"sort"
)

// DefaultCurrentPlanName identifies the user's current plan among the tariffs.
const DefaultCurrentPlanName = "current plan"

// CurrentOption is the user's current plan, when present in the tariff list.
type CurrentOption struct {
	Name      string  `json:"name"`
	TotalCost float64 `json:"total_cost"`
	Rank      int     `json:"rank"`
	Found     bool    `json:"found"`
}

// BestOption is the cheapest plan and what it saves against the current one.
type BestOption struct {
	Name      string  `json:"name"`
	TotalCost float64 `json:"total_cost"`
	Savings   float64 `json:"savings"`
}

// Ranking is the ordered outcome of a rating run.
type Ranking struct {
	Costs   []CompanyCost
	Best    BestOption
	Current CurrentOption
}

// Rank orders costs ascending by total. Ties keep input order. Ranks run
// 1..N without gaps. The current plan is matched by exact name; savings are
// zero when it is absent or cheaper than the best option.
func Rank(costs []CompanyCost, currentPlanName string) (Ranking, error) {
	if len(costs) == 0 {
		return Ranking{}, &NoTariffsError{}
	}
	ranked := make([]CompanyCost, len(costs))
	copy(ranked, costs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalCost < ranked[j].TotalCost
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	best := ranked[0]
	result := Ranking{
		Costs: ranked,
		Best:  BestOption{Name: best.Name, TotalCost: best.TotalCost},
	}
	if currentPlanName == "" {
		currentPlanName = DefaultCurrentPlanName
	}
	for _, cost := range ranked {
		if cost.Name != currentPlanName {
			continue
		}
		result.Current = CurrentOption{Name: cost.Name, TotalCost: cost.TotalCost, Rank: cost.Rank, Found: true}
		result.Best.Savings = math.Max(0, cost.TotalCost-best.TotalCost)
		break
	}
	if !result.Current.Found {
		result.Current.Name = currentPlanName
	}
	return result, nil
}
