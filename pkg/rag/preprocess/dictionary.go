package preprocess

import "regexp"

type phraseCorrection struct {
	pattern     *regexp.Regexp
	replacement string
}

func phrase(expr, replacement string) phraseCorrection {
	return phraseCorrection{
		pattern:     regexp.MustCompile(`(?i)\b` + expr + `\b`),
		replacement: replacement,
	}
}

// phraseCorrections run before word lookups, in this order.
var phraseCorrections = []phraseCorrection{
	phrase(`tell me abot`, "tell me about"),
	phrase(`tel me about`, "tell me about"),
	phrase(`tel me ur`, "tell me your"),
	phrase(`wat (can|do|are) you`, "what $1 you"),
	phrase(`wats your`, "what's your"),
	phrase(`whats ur`, "what's your"),
	phrase(`(?:wat|wut) (is|are)`, "what $1"),
	phrase(`hw (many|much)`, "how $1"),
	phrase(`discribe urself`, "describe yourself"),
	phrase(`descibe yourself`, "describe yourself"),
	phrase(`ur (skills|experience|background|projects)`, "your $1"),
	phrase(`cna you`, "can you"),
	phrase(`r u`, "are you"),
	phrase(`(can|could|do|did|are|were|have|will|would) u`, "$1 you"),
}

// typoCorrections maps common misspellings and shorthand to the intended word.
var typoCorrections = map[string]string{
	// question words
	"wat": "what", "wut": "what", "wht": "what", "waht": "what",
	"hw": "how", "hwo": "how",
	"wen": "when", "whn": "when",
	"wer": "where",
	"wy": "why", "wyh": "why",
	"woh": "who",

	// verbs
	"cna": "can", "cann": "can",
	"tel": "tell", "tlel": "tell", "tll": "tell",
	"discribe": "describe", "descripe": "describe", "desribe": "describe",
	"explane": "explain", "explian": "explain", "expain": "explain",

	// common words
	"abotu": "about", "abot": "about", "abuot": "about", "bout": "about",
	"youself": "yourself", "urself": "yourself", "yurself": "yourself",
	"yur": "your", "yor": "your", "yuor": "your", "ur": "your",
	"thier": "their", "thir": "their",
	"teh": "the", "hte": "the",
	"taht": "that", "tht": "that", "thta": "that",
	"wich": "which", "whcih": "which", "wihch": "which",
	"u": "you", "pls": "please", "plz": "please", "thx": "thanks",
	"strenth": "strength", "stregth": "strength", "strengh": "strength",
	"weekness": "weakness", "weaknes": "weakness",
	"challange": "challenge", "chalenge": "challenge", "chalelnge": "challenge",
	"compnay": "company", "comapny": "company", "companey": "company",
	"bacground": "background", "backgorund": "background", "bakground": "background",
	"responsibilty": "responsibility", "responsibilites": "responsibilities",
}

// domainTerms is the fixed professional vocabulary. Only these exact
// misspellings are corrected.
var domainTerms = map[string]string{
	"experiance": "experience", "experince": "experience", "expereince": "experience",
	"skilss": "skills", "skils": "skills", "skiils": "skills",
	"projets": "projects", "projetcs": "projects", "porjects": "projects",
	"programing": "programming", "programmin": "programming", "progamming": "programming",
	"developement": "development", "devlopment": "development", "develpoment": "development",
	"achivements": "achievements", "achievments": "achievements", "achivment": "achievement",
	"educaton": "education", "educaiton": "education", "educaion": "education",
	"tecnical": "technical", "techincal": "technical", "technincal": "technical", "techncal": "technical",
	"interivew": "interview", "interveiw": "interview", "intervew": "interview",
	"certifcate": "certificate", "certficate": "certificate", "certificat": "certificate",
	"unversity": "university", "universtiy": "university", "univeristy": "university",
	"gradute": "graduate", "graduete": "graduate", "graduat": "graduate",
	"langauges": "languages", "languges": "languages", "langages": "languages",
	"framworks": "frameworks", "framewroks": "frameworks", "framewoks": "frameworks",
	"databse": "database", "databses": "databases", "databae": "database",
	"javscript": "javascript", "javasript": "javascript", "javacsript": "javascript",
	"typscript": "typescript", "typesript": "typescript", "tyepscript": "typescript",
	"pyhton": "python", "pyton": "python",
	"raect": "react", "recat": "react",
	"postgress": "postgresql", "postgresq": "postgresql", "postgrsql": "postgresql",
	"fullstak": "fullstack", "frontned": "frontend", "backedn": "backend",
	"portfoilo": "portfolio", "portfolo": "portfolio",
	"internhsip": "internship", "intership": "internship",
	"deployemnt": "deployment", "deploymnet": "deployment",
	"authentcation": "authentication", "authetication": "authentication",
}
