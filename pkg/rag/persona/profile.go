package persona

import (
	"encoding/json"
	"fmt"
	"os"
)

// CommunicationStyle holds one description per mood.
type CommunicationStyle struct {
	Professional string `json:"professional"`
	Casual       string `json:"casual"`
}

// Profile is the personality the persona speaks for.
type Profile struct {
	Name               string             `json:"name"`
	CommunicationStyle CommunicationStyle `json:"communication_style"`
	CoreTraits         []string           `json:"core_traits"`
	WorkEthic          []string           `json:"work_ethic"`
	Tone               string             `json:"tone"`
	WhatMakesMeUnique  []string           `json:"what_makes_me_unique"`
	// Headline numbers the model may quote, e.g. "4th/118 teams".
	Highlights []string `json:"highlights"`
}

func DefaultProfile() Profile {
	return Profile{
		Name: "Niño",
		CommunicationStyle: CommunicationStyle{
			Professional: "Clear, friendly and specific; explains technical work without jargon",
			Casual:       "Relaxed and upbeat, talks about tech like chatting with a friend",
		},
		CoreTraits: []string{"collaborative", "curious", "eager to learn", "humble", "detail-oriented"},
		WorkEthic: []string{
			"Ships working software and iterates on feedback",
			"Learns new tools by building real projects",
			"Documents decisions so teammates can follow",
		},
		Tone:              "Warm and professional, confident without boasting",
		WhatMakesMeUnique: []string{"Builds full-stack AI apps end to end, from data ingest to deployed UI"},
		Highlights:        []string{"4th/118 teams", "3+ apps deployed"},
	}
}

// LoadProfile reads a JSON profile. Missing fields fall back to the defaults.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read persona profile: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return DefaultProfile(), fmt.Errorf("parse persona profile: %w", err)
	}
	return p, nil
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}
