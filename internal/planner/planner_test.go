package planner

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/ayurbalance/wellness-platform/internal/state"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
}

func TestMealType_Buckets(t *testing.T) {
	cases := map[string]string{
		"08:00": "Breakfast",
		"10:59": "Breakfast",
		"12:30": "Lunch",
		"15:45": "Lunch",
		"16:00": "Snack",
		"18:30": "Snack",
		"19:30": "Dinner",
		"23:00": "Dinner",
	}
	for clock, want := range cases {
		if got := MealType(clock); got != want {
			t.Fatalf("MealType(%q) = %q, want %q", clock, got, want)
		}
	}
}

func basePlan() state.DietPlan {
	return state.DietPlan{
		Date: "2026-08-28",
		Meals: []state.Meal{
			{Time: "08:00", Name: "Warm Spiced Oats", Calories: 320},
			{Time: "12:30", Name: "Moong Dal Khichdi", Calories: 450},
			{Time: "19:30", Name: "Steamed Veg + Ghee", Calories: 420},
		},
	}
}

func TestExpandWeek_SevenDatedDays(t *testing.T) {
	g := New(rand.New(rand.NewSource(1)), fixedNow)

	wp := g.ExpandWeek(basePlan())
	if len(wp.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(wp.Days))
	}
	if wp.Days[0].Date != "2026-08-28" || wp.Days[6].Date != "2026-09-03" {
		t.Fatalf("unexpected date range: %s .. %s", wp.Days[0].Date, wp.Days[6].Date)
	}
}

func TestExpandWeek_InsertsSnackWhenMissing(t *testing.T) {
	g := New(rand.New(rand.NewSource(1)), fixedNow)

	wp := g.ExpandWeek(basePlan())
	day := wp.Days[0]
	if len(day.Meals) != 4 {
		t.Fatalf("expected snack inserted, got %d meals", len(day.Meals))
	}
	last := day.Meals[len(day.Meals)-1]
	if last.Type != "Snack" || last.Name != "Fruit + Nuts" || last.WaterMl != 200 {
		t.Fatalf("unexpected inserted snack: %+v", last)
	}

	withSnack := basePlan()
	withSnack.Meals = append(withSnack.Meals, state.Meal{Time: "16:00", Name: "Herbal Tea + Nuts", Calories: 180})
	wp = g.ExpandWeek(withSnack)
	if got := len(wp.Days[0].Meals); got != 4 {
		t.Fatalf("expected no duplicate snack, got %d meals", got)
	}
}

func TestPlanRows_FlattensDay(t *testing.T) {
	day := DayPlan{Date: "2026-08-28", Meals: []WeeklyMeal{
		{Time: "08:00", Type: "Breakfast", Name: "Warm Oats", Calories: 320, WaterMl: 250},
	}}
	rows := PlanRows(day)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	want := state.PlanRow{Time: "08:00", Name: "Warm Oats", Calories: 320, WaterMl: 250}
	if rows[0] != want {
		t.Fatalf("got %+v want %+v", rows[0], want)
	}
}

func TestRecommend_ByActivity(t *testing.T) {
	if got := Recommend(ActivityHigh); got != (Recommendation{WaterL: 3, Calories: 2600}) {
		t.Fatalf("high: %+v", got)
	}
	if got := Recommend(ActivityModerate); got != (Recommendation{WaterL: 2.5, Calories: 2200}) {
		t.Fatalf("moderate: %+v", got)
	}
	if got := Recommend(ActivityLow); got != (Recommendation{WaterL: 2, Calories: 1800}) {
		t.Fatalf("low: %+v", got)
	}
	// unknown and empty activities fall back to the low values
	if got := Recommend(Activity("Couch")); got != (Recommendation{WaterL: 2, Calories: 1800}) {
		t.Fatalf("unknown: %+v", got)
	}
	if got := Recommend(""); got != (Recommendation{WaterL: 2, Calories: 1800}) {
		t.Fatalf("empty: %+v", got)
	}
}

func TestCuisineWeek_ShapeAndMacros(t *testing.T) {
	g := New(rand.New(rand.NewSource(7)), fixedNow)

	days := g.CuisineWeek("Indian", true, nil)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	for _, d := range days {
		if len(d.Meals) != 4 {
			t.Fatalf("day %s: expected 4 meals, got %d", d.Day, len(d.Meals))
		}
	}

	breakfast := days[0].Meals[0]
	if breakfast.Type != "Breakfast" || breakfast.Calories != 400 {
		t.Fatalf("unexpected breakfast: %+v", breakfast)
	}
	// 20/55/25 split at 4/4/9 kcal per gram
	if breakfast.Protein != 20 || breakfast.Carbs != 55 || breakfast.Fat != 11 {
		t.Fatalf("unexpected macros: %+v", breakfast)
	}
}

func TestCuisineWeek_DeterministicUnderSeed(t *testing.T) {
	a := New(rand.New(rand.NewSource(42)), fixedNow).CuisineWeek("Mediterranean", false, nil)
	b := New(rand.New(rand.NewSource(42)), fixedNow).CuisineWeek("Mediterranean", false, nil)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed must produce the same plan")
	}
}

func TestCuisineWeek_Restrictions(t *testing.T) {
	g := New(rand.New(rand.NewSource(3)), fixedNow)

	days := g.CuisineWeek("Indian", true, []string{"nuts"})
	for _, d := range days {
		for _, m := range d.Meals {
			if nutsRe.MatchString(m.Name) {
				t.Fatalf("nuts restriction leaked: %q", m.Name)
			}
		}
	}

	days = New(rand.New(rand.NewSource(3)), fixedNow).CuisineWeek("Mediterranean", true, []string{"dairy"})
	for _, d := range days {
		for _, m := range d.Meals {
			if dairyRe.MatchString(m.Name) && m.Name != "Dairy-free Bowl" {
				t.Fatalf("dairy restriction leaked: %q", m.Name)
			}
		}
	}
}

func TestCuisineWeek_NonVegStripsVegPrefix(t *testing.T) {
	g := New(rand.New(rand.NewSource(5)), fixedNow)

	days := g.CuisineWeek("Indian", false, nil)
	for _, d := range days {
		for _, m := range d.Meals {
			if m.Name == "Veg Thali" || m.Name == "Veg Sandwich" {
				t.Fatalf("veg-prefixed name survived in non-veg plan: %q", m.Name)
			}
		}
	}
}
