// Package chatbot implements the assistant's keyword reply rules.
package chatbot

import "strings"

// Response carries the canned reply plus the store actions the assistant
// performs on the patient's behalf.
type Response struct {
	Reply      string
	LogWaterMl int
	MarkMeal   bool
}

const defaultReply = "Noted. How else can I help?"

// Evaluate applies the rules in order; later matches override the reply but
// actions accumulate.
func Evaluate(text string) Response {
	t := strings.ToLower(text)
	resp := Response{Reply: defaultReply}
	if strings.Contains(t, "water") {
		resp.LogWaterMl = 250
		resp.Reply = "Logged 250ml water. Keep hydrating!"
	}
	if strings.Contains(t, "ate my lunch") || strings.Contains(t, "lunch done") || strings.Contains(t, "meal done") {
		resp.MarkMeal = true
		resp.Reply = "Great! I marked your lunch as taken. Want a light herbal tea later?"
	}
	if strings.Contains(t, "tip") || strings.Contains(t, "advice") {
		resp.Reply = "Choose warm, cooked meals. Avoid iced drinks. Ginger and cumin can aid digestion."
	}
	return resp
}
