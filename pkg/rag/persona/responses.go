package persona

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// Kind selects a canned persona response.
type Kind string

const (
	KindNoContext       Kind = "no_context"
	KindUnrelated       Kind = "unrelated"
	KindTechPreferences Kind = "tech_preferences"
	KindEntertainment   Kind = "entertainment"
	KindPersonal        Kind = "personal"
	KindInappropriate   Kind = "inappropriate"
	KindManipulation    Kind = "manipulation"
	KindRateLimit       Kind = "rate_limit"
	KindError           Kind = "error"
	KindTooShort        Kind = "too_short"
	KindKnowledgeGap    Kind = "knowledge_gap"
)

// Picker returns an index in [0, n). Tests inject a fixed one.
type Picker func(n int) int

type variants struct {
	professional string
	genz         []string
}

var knowledgeGapQueryRe = regexp.MustCompile(`how long|timeline|duration|how many|users|downloads|metrics|salary|income`)

// Responder renders mood-specific canned responses for one profile.
type Responder struct {
	responses map[Kind]variants
	pick      Picker
}

// NewResponder uses math/rand when pick is nil.
func NewResponder(profile Profile, pick Picker) *Responder {
	if pick == nil {
		pick = rand.IntN
	}
	return &Responder{
		responses: buildResponses(profile.Name),
		pick:      pick,
	}
}

// Response returns the canned text for kind in mood. Unknown kinds fall
// back to the unrelated response.
func (r *Responder) Response(kind Kind, mood Mood) string {
	v, ok := r.responses[kind]
	if !ok {
		v = r.responses[KindUnrelated]
	}
	if mood != GenZ {
		return v.professional
	}
	if len(v.genz) == 1 {
		return v.genz[0]
	}
	return v.genz[r.pick(len(v.genz))]
}

// SmartFallback answers when no usable context exists: question shapes the
// knowledge base cannot answer get the knowledge gap text, the rest get
// the generic no-context text.
func (r *Responder) SmartFallback(query string, mood Mood) string {
	if knowledgeGapQueryRe.MatchString(strings.ToLower(query)) {
		return r.Response(KindKnowledgeGap, mood)
	}
	return r.Response(KindNoContext, mood)
}

func buildResponses(name string) map[Kind]variants {
	sub := func(s string) string { return strings.ReplaceAll(s, "{name}", name) }

	return map[Kind]variants{
		KindNoContext: {
			professional: sub("I don't have specific information about that in my knowledge base. However, I can tell you about {name}'s projects, technical skills, or work experience. What would you like to know?"),
			genz:         []string{"ngl i don't have that info 😅 but i can tell you about the projects, skills, or experience fr. what you tryna know?"},
		},
		KindUnrelated: {
			professional: sub("I'm here to discuss {name}'s professional background and technical experience. What would you like to know about {name}'s skills, projects, or career goals?"),
			genz:         []string{"yo that's off topic 💀 let's talk about the portfolio stuff - projects, skills, experience. what's good?"},
		},
		KindTechPreferences: {
			professional: "I focus on discussing my professional development work and technical skills. What would you like to know about my projects, programming experience, or the technologies I use in development?",
			genz:         []string{"yo we keeping this about my dev work and projects fr 💻 what you wanna know about my coding skills, tech stack, or the stuff i've built?"},
		},
		KindEntertainment: {
			professional: "I'm here to discuss my professional background and development work. I'd be happy to share details about my coding projects, technical skills, or career goals instead.",
			genz:         []string{"keeping it professional here bro 😅 let's talk about my projects, coding experience, or tech stuff instead. what you curious about?"},
		},
		KindPersonal: {
			professional: "I keep personal details private and focus on professional discussions. Let me share information about my development projects, technical expertise, or career achievements instead.",
			genz:         []string{"nah keeping that stuff private fr 😊 but i can def talk about my coding projects, skills, or work experience tho. what interests you?"},
		},
		KindInappropriate: {
			professional: "I maintain professional standards. Please ask about my development experience, technical projects, or programming skills instead.",
			genz:         []string{"nah bro that's not it 💀 ask me about coding projects or tech stuff instead fr"},
		},
		KindManipulation: {
			professional: sub("I maintain professional standards. Please ask about {name}'s development experience, technical skills, or career goals."),
			genz: []string{
				"nah bro, you trippin' 💀 ask me about projects or skills instead fr",
				"Nah bro, that's not the vibe 💀 Ask me about my projects or skills instead fr",
				"Lol that's outta pocket 😭 Let's talk about my portfolio tho - what you wanna know?",
				"Not happening chief 🤌 We keeping this professional. Ask about my work, skills, or projects",
			},
		},
		KindRateLimit: {
			professional: "I'm receiving too many requests right now. Please wait a moment and try again.",
			genz:         []string{"yo slow down 😭 gimme a sec to catch up, then ask again"},
		},
		KindError: {
			professional: "I encountered a technical issue. Please try again in a moment.",
			genz:         []string{"oof something broke 💀 try again in a sec, my bad"},
		},
		KindTooShort: {
			professional: "Your query is too brief. Please ask a more specific question about my skills, projects, or experience.",
			genz:         []string{"bro that's too short 😭 gimme more details - what you wanna know about projects or skills?"},
		},
		KindKnowledgeGap: {
			professional: "I don't have that specific information documented. However, I can discuss the technologies I used, challenges I solved, or outcomes I achieved. What interests you most?",
			genz:         []string{"yo don't have those exact deets 😅 but i can break down the tech, challenges, or results fr. what you wanna hear about?"},
		},
	}
}
