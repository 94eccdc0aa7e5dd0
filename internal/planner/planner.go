// Package planner produces mock diet plans from small fixed pools. All
// selection runs through an injected pseudo-random source so generation is
// deterministic under test.
package planner

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ayurbalance/wellness-platform/internal/state"
)

type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

func New(rng *rand.Rand, now func() time.Time) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now}
}

// MealType buckets a HH:MM time the way the weekly expansion does.
func MealType(clock string) string {
	h, _, _ := strings.Cut(clock, ":")
	n, err := strconv.Atoi(h)
	if err != nil {
		return "Snack"
	}
	switch {
	case n < 11:
		return "Breakfast"
	case n < 16:
		return "Lunch"
	case n < 19:
		return "Snack"
	default:
		return "Dinner"
	}
}

// WeeklyMeal is one scheduled meal of a day plan.
type WeeklyMeal struct {
	Time       string   `json:"time"`
	Type       string   `json:"type"`
	Name       string   `json:"name"`
	Calories   int      `json:"calories"`
	WaterMl    int      `json:"water_ml,omitempty"`
	Properties []string `json:"properties,omitempty"`
}

type DayPlan struct {
	Date  string       `json:"date"`
	Meals []WeeklyMeal `json:"meals"`
}

type WeeklyPlan struct {
	Days []DayPlan `json:"days"`
}

// ExpandWeek turns a single-day plan into seven dated days starting today,
// inserting an afternoon snack on days that lack one.
func (g *Generator) ExpandWeek(base state.DietPlan) WeeklyPlan {
	start := g.now()
	days := make([]DayPlan, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		meals := make([]WeeklyMeal, 0, len(base.Meals)+1)
		hasSnack := false
		for _, m := range base.Meals {
			t := MealType(m.Time)
			if t == "Snack" {
				hasSnack = true
			}
			meals = append(meals, WeeklyMeal{
				Time:       m.Time,
				Type:       t,
				Name:       m.Name,
				Calories:   m.Calories,
				Properties: append([]string(nil), m.Properties...),
			})
		}
		if !hasSnack {
			meals = append(meals, WeeklyMeal{
				Time: "16:00", Type: "Snack", Name: "Fruit + Nuts",
				Calories: 180, WaterMl: 200, Properties: []string{"Light", "Sattvic"},
			})
		}
		days = append(days, DayPlan{Date: d.Format("2006-01-02"), Meals: meals})
	}
	return WeeklyPlan{Days: days}
}

// PlanRows flattens a day into the doctor-editable row shape.
func PlanRows(day DayPlan) []state.PlanRow {
	rows := make([]state.PlanRow, 0, len(day.Meals))
	for _, m := range day.Meals {
		rows = append(rows, state.PlanRow{Time: m.Time, Name: m.Name, Calories: m.Calories, WaterMl: m.WaterMl})
	}
	return rows
}

// --- cuisine-driven weekly generation ---

type Activity string

const (
	ActivityLow      Activity = "Low"
	ActivityModerate Activity = "Moderate"
	ActivityHigh     Activity = "High"
)

type Recommendation struct {
	WaterL   float64 `json:"water_l"`
	Calories int     `json:"calories"`
}

// Recommend maps activity to daily water and calorie targets. Anything that
// is not High or Moderate gets the low-activity values.
func Recommend(a Activity) Recommendation {
	switch a {
	case ActivityHigh:
		return Recommendation{WaterL: 3, Calories: 2600}
	case ActivityModerate:
		return Recommendation{WaterL: 2.5, Calories: 2200}
	default:
		return Recommendation{WaterL: 2, Calories: 1800}
	}
}

type Ayur struct {
	Rasa   string   `json:"rasa"`
	Virya  string   `json:"virya"`
	Vipaka string   `json:"vipaka"`
	Guna   []string `json:"guna"`
}

type CuisineMeal struct {
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Calories int      `json:"calories"`
	Protein  int      `json:"protein"`
	Carbs    int      `json:"carbs"`
	Fat      int      `json:"fat"`
	Vitamins []string `json:"vitamins"`
	Ayur     Ayur     `json:"ayur"`
}

type CuisineDay struct {
	Day   string        `json:"day"`
	Meals []CuisineMeal `json:"meals"`
}

var mealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snacks"}

var weekDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func pools(cuisine string, veg bool) map[string][2]string {
	pick := func(vegName, nonVegName string) string {
		if veg {
			return vegName
		}
		return nonVegName
	}
	switch cuisine {
	case "Mediterranean":
		return map[string][2]string{
			"Breakfast": {pick("Greek Yogurt + Fruit", "Egg Omelette"), "Avocado Toast"},
			"Lunch":     {pick("Chickpea Salad", "Grilled Chicken Salad"), "Pasta Primavera"},
			"Dinner":    {pick("Veg Mezze Bowl", "Baked Salmon"), "Lentil Stew"},
			"Snacks":    {"Hummus + Veg", "Olives + Nuts"},
		}
	case "Continental":
		return map[string][2]string{
			"Breakfast": {pick("Pancakes", "Scrambled Eggs"), "Granola Bowl"},
			"Lunch":     {pick("Veg Sandwich", "Turkey Sandwich"), "Tomato Soup"},
			"Dinner":    {pick("Veg Pasta", "Steak + Mash"), "Risotto"},
			"Snacks":    {"Trail Mix", "Fruit Bowl"},
		}
	default: // Indian
		return map[string][2]string{
			"Breakfast": {"Warm Spiced Oats", "Poha"},
			"Lunch":     {pick("Moong Dal Khichdi", "Chicken Curry + Rice"), "Veg Thali"},
			"Dinner":    {pick("Millet Roti + Veg", "Grilled Fish + Veg"), "Dal + Rice"},
			"Snacks":    {"Fruit + Nuts", "Herbal Tea"},
		}
	}
}

func baseCalories(mealType string) int {
	switch mealType {
	case "Breakfast":
		return 400
	case "Lunch":
		return 600
	case "Dinner":
		return 550
	default:
		return 200
	}
}

// macro split: 20% protein, 55% carbs, 25% fat (4/4/9 kcal per gram)
func macros(kcal int) (protein, carbs, fat int) {
	protein = int(float64(kcal)*0.2/4 + 0.5)
	carbs = int(float64(kcal)*0.55/4 + 0.5)
	fat = int(float64(kcal)*0.25/9 + 0.5)
	return
}

var (
	nutsRe  = regexp.MustCompile(`(?i)\+?\s*\bNuts\b`)
	dairyRe = regexp.MustCompile(`(?i)yogurt|paneer|curd|milk`)
	vegRe   = regexp.MustCompile(`(?i)Veg\s*`)
)

// CuisineWeek generates a seven-day plan for the chosen cuisine, applying
// dietary restrictions after name selection.
func (g *Generator) CuisineWeek(cuisine string, veg bool, restrictions []string) []CuisineDay {
	restricted := func(tag string) bool {
		for _, r := range restrictions {
			if r == tag {
				return true
			}
		}
		return false
	}
	pool := pools(cuisine, veg)
	days := make([]CuisineDay, 0, len(weekDays))
	for _, day := range weekDays {
		meals := make([]CuisineMeal, 0, len(mealTypes))
		for _, t := range mealTypes {
			options := pool[t]
			name := options[g.rng.Intn(len(options))]
			if restricted("nuts") && nutsRe.MatchString(name) {
				name = strings.TrimSpace(nutsRe.ReplaceAllString(name, ""))
			}
			if restricted("dairy") && dairyRe.MatchString(name) {
				name = "Dairy-free Bowl"
			}
			if !veg && vegRe.MatchString(name) {
				name = strings.TrimSpace(vegRe.ReplaceAllString(name, ""))
			}
			kcal := baseCalories(t)
			p, cb, f := macros(kcal)
			meals = append(meals, CuisineMeal{
				Type:     t,
				Name:     name,
				Calories: kcal,
				Protein:  p,
				Carbs:    cb,
				Fat:      f,
				Vitamins: []string{"A", "B", "C"},
				Ayur:     Ayur{Rasa: "Madhura", Virya: "Ushna", Vipaka: "Madhura", Guna: []string{"Sattvic", "Light"}},
			})
		}
		days = append(days, CuisineDay{Day: day, Meals: meals})
	}
	return days
}
