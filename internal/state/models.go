package state

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleDoctor Role = "doctor"
)

// Dosha is the constitutional classification tag. Domain flavor only; nothing
// is computed from it.
type Dosha string

const (
	DoshaVata  Dosha = "Vata"
	DoshaPitta Dosha = "Pitta"
	DoshaKapha Dosha = "Kapha"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Dosha Dosha  `json:"dosha,omitempty"`
}

type Progress struct {
	WaterMl      int `json:"water_ml"`
	WaterGoalMl  int `json:"water_goal_ml"`
	MealsPlanned int `json:"meals_planned"`
	MealsTaken   int `json:"meals_taken"`
}

type Meal struct {
	Time       string   `json:"time"`
	Name       string   `json:"name"`
	Calories   int      `json:"calories"`
	Properties []string `json:"properties"`
}

type DietPlan struct {
	Date  string `json:"date"` // ISO date, e.g. 2026-08-28
	Notes string `json:"notes,omitempty"`
	Meals []Meal `json:"meals"`
}

type Doctor struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Specialty string  `json:"specialty"`
	Rating    float64 `json:"rating"`
}

type PatientProfile struct {
	Age          int    `json:"age,omitempty"`
	Gender       string `json:"gender,omitempty"`
	HeightCm     int    `json:"height_cm,omitempty"`
	WeightKg     int    `json:"weight_kg,omitempty"`
	Allergies    string `json:"allergies,omitempty"`
	Conditions   string `json:"conditions,omitempty"`
	Medications  string `json:"medications,omitempty"`
	Habits       string `json:"habits,omitempty"`
	SleepPattern string `json:"sleep_pattern,omitempty"`
	Digestion    string `json:"digestion,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// PlanRow is one line of a doctor-authored meal plan.
type PlanRow struct {
	Time     string `json:"time"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	WaterMl  int    `json:"water_ml,omitempty"`
}

type ConsultRequest struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	DoctorID       string          `json:"doctor_id"`
	Status         RequestStatus   `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	PatientName    string          `json:"patient_name,omitempty"`
	PatientDosha   Dosha           `json:"patient_dosha,omitempty"`
	Plan           []PlanRow       `json:"plan,omitempty"`
	PatientProfile *PatientProfile `json:"patient_profile,omitempty"`
}

type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyDoctor  NotificationType = "doctor"
	NotifyDiet    NotificationType = "diet"
	NotifyWater   NotificationType = "water"
)

type Notification struct {
	ID      string           `json:"id"`
	Type    NotificationType `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Time    time.Time        `json:"time"`
	Read    bool             `json:"read"`
}

type ChatSender string

const (
	SenderDoctor  ChatSender = "doctor"
	SenderPatient ChatSender = "patient"
	SenderSystem  ChatSender = "system"
)

type ChatMessage struct {
	ID        string     `json:"id"`
	RequestID string     `json:"request_id"`
	From      ChatSender `json:"from"`
	Text      string     `json:"text"`
	Ts        int64      `json:"ts"` // unix milliseconds
}

const (
	maxNotifications   = 50
	maxConversationLen = 200
)
