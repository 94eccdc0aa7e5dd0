package state

import "time"

// Doctors is the static reference list. There are no create/update/delete
// operations for doctors.
func Doctors() []Doctor {
	return []Doctor{
		{ID: "d1", Name: "Dr. Anaya Verma", Specialty: "Ayurvedic Diet", Rating: 4.9},
		{ID: "d2", Name: "Dr. Rohan Mehta", Specialty: "Digestive Health", Rating: 4.7},
		{ID: "d3", Name: "Dr. Kavya Iyer", Specialty: "Metabolic Care", Rating: 4.8},
	}
}

// DefaultPlanRows is the doctor-side starter meal plan used for direct
// enrollment and as the editor baseline.
func DefaultPlanRows() []PlanRow {
	return []PlanRow{
		{Time: "08:00", Name: "Warm Spiced Oats", Calories: 320, WaterMl: 250},
		{Time: "12:30", Name: "Moong Dal Khichdi", Calories: 450, WaterMl: 300},
		{Time: "19:30", Name: "Steamed Veg + Ghee", Calories: 420, WaterMl: 250},
	}
}

// seedRequests makes the app usable on first run: one pending request and two
// accepted patients with plans already attached.
func seedRequests(now time.Time) []ConsultRequest {
	return []ConsultRequest{
		{
			ID:           "req_1001",
			UserID:       "u1001",
			DoctorID:     "d1",
			Status:       StatusAccepted,
			CreatedAt:    now.Add(-24 * time.Hour),
			PatientName:  "Riya Sharma",
			PatientDosha: DoshaPitta,
			Plan: []PlanRow{
				{Time: "08:00", Name: "Lemon Ginger Tea", Calories: 40, WaterMl: 200},
				{Time: "13:00", Name: "Veg Khichdi", Calories: 420, WaterMl: 300},
				{Time: "19:30", Name: "Steamed Veg + Ghee", Calories: 400, WaterMl: 250},
			},
		},
		{
			ID:           "req_1002",
			UserID:       "u1002",
			DoctorID:     "d1",
			Status:       StatusPending,
			CreatedAt:    now,
			PatientName:  "Aarav Patel",
			PatientDosha: DoshaVata,
		},
		{
			ID:           "req_1003",
			UserID:       "u1003",
			DoctorID:     "d1",
			Status:       StatusAccepted,
			CreatedAt:    now.Add(-time.Hour),
			PatientName:  "Neha Gupta",
			PatientDosha: DoshaKapha,
			Plan: []PlanRow{
				{Time: "08:30", Name: "Warm Oats", Calories: 320, WaterMl: 250},
				{Time: "12:45", Name: "Moong Dal Soup", Calories: 380, WaterMl: 300},
				{Time: "19:00", Name: "Millet Roti + Veg", Calories: 450, WaterMl: 250},
			},
		},
	}
}

func seedConversations(now time.Time, newID func(prefix string) string) map[string][]ChatMessage {
	ms := now.UnixMilli()
	return map[string][]ChatMessage{
		"req_1001": {
			{ID: newID("msg"), RequestID: "req_1001", From: SenderSystem, Text: "Consultation started with Riya Sharma.", Ts: ms - 800000},
			{ID: newID("msg"), RequestID: "req_1001", From: SenderPatient, Text: "Good morning, doctor!", Ts: ms - 790000},
			{ID: newID("msg"), RequestID: "req_1001", From: SenderDoctor, Text: "Hello Riya, how are you feeling today?", Ts: ms - 780000},
		},
		"req_1003": {
			{ID: newID("msg"), RequestID: "req_1003", From: SenderSystem, Text: "Consultation started with Neha Gupta.", Ts: ms - 400000},
			{ID: newID("msg"), RequestID: "req_1003", From: SenderPatient, Text: "I feel heavy after dinner.", Ts: ms - 300000},
		},
	}
}

// defaultProgress is the first-run progress record.
func defaultProgress() Progress {
	return Progress{WaterMl: 0, WaterGoalMl: 2500, MealsPlanned: 3, MealsTaken: 0}
}
