package rules

import (
	"regexp"

	"github.com/jonathan/ats-analyzer/internal/types"
)

// Category weights for the composite score. They sum to 1.0 and encode that
// content quality and keyword relevance matter roughly 2-4x more than
// formatting or education.
var categoryWeights = map[types.Category]float64{
	types.CategoryContactInfo: 0.10,
	types.CategoryStructure:   0.15,
	types.CategoryContent:     0.25,
	types.CategoryKeywords:    0.20,
	types.CategoryFormatting:  0.05,
	types.CategoryExperience:  0.15,
	types.CategoryEducation:   0.05,
	types.CategorySkills:      0.05,
}

// Contact info patterns
var (
	emailRe    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe    = regexp.MustCompile(`(\+?1[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	urlRe      = regexp.MustCompile(`(https?://|www\.)[^\s]+`)
	freemailRe = regexp.MustCompile(`@(gmail|yahoo|hotmail|outlook|aol|icloud)\.`)
)

// locationKeywords signal that the résumé lists a location.
var locationKeywords = []string{
	"street", "avenue", "blvd", "boulevard", "city", "state",
	"zip", "remote", "relocate", "location",
}

// sectionHeaders maps a canonical section to its recognized header aliases.
// Aliases are matched case-insensitively at line starts.
type sectionHeader struct {
	canonical string
	aliases   []string
}

// canonicalSections lists the six headers the structure analyzer looks for,
// in the order they are credited.
var canonicalSections = []sectionHeader{
	{"summary", []string{"summary", "professional summary", "profile", "objective", "about me", "about"}},
	{"experience", []string{"experience", "work experience", "professional experience", "employment", "employment history", "work history"}},
	{"education", []string{"education", "academic background", "academics", "qualifications"}},
	{"skills", []string{"skills", "technical skills", "core competencies", "competencies", "technologies", "expertise"}},
	{"projects", []string{"projects", "personal projects", "portfolio", "selected projects"}},
	{"certifications", []string{"certifications", "certificates", "licenses", "awards", "honors"}},
}

// allHeaderAliases returns every alias for every recognized section.
func allHeaderAliases() []string {
	var out []string
	for _, s := range canonicalSections {
		out = append(out, s.aliases...)
	}
	return out
}

// Word-count band considered optimal for a one-to-two page résumé.
const (
	optimalWordsMin = 300
	optimalWordsMax = 800
)

// actionVerbs is a fixed list of strong résumé verbs. Matching is done on
// lowercased text, so stems cover common inflections.
var actionVerbs = []string{
	"achieved", "led", "managed", "developed", "created", "implemented",
	"designed", "launched", "built", "improved", "increased", "reduced",
	"delivered", "optimized", "streamlined", "spearheaded", "initiated",
	"negotiated", "coordinated", "directed", "established", "executed",
	"automated", "architected", "mentored", "drove", "transformed",
	"accelerated", "generated", "resolved",
}

// Quantifier patterns: percentages, currency, multipliers, durations and
// headcounts. Any match counts as a quantified achievement.
var quantifierRes = []*regexp.Regexp{
	regexp.MustCompile(`\d+(\.\d+)?%`),
	regexp.MustCompile(`[$€£]\s?\d[\d,.]*[kmb]?`),
	regexp.MustCompile(`\d+(\.\d+)?x\b`),
	regexp.MustCompile(`\b\d+\+?\s*(users|customers|clients|people|employees|engineers|members|projects|teams)\b`),
	regexp.MustCompile(`\b\d+\s*(years?|months?|weeks?|hours?)\b`),
}

// weakPatterns are penalized 5 points per distinct overused pattern.
var weakPatterns = []string{
	"responsible for", "duties included", "worked on", "helped with",
	"assisted with", "participated in",
}

// firstPersonPronouns trigger a penalty when they appear more than twice.
var firstPersonPronouns = []string{"i ", " me ", " my ", " myself "}

var bulletMarkers = []string{"•", "- ", "* ", "– ", "▪"}

// industryVocabularies classifies a résumé into one of five industries by
// keyword hit count. Iteration order is fixed; ties keep the earlier industry.
var industryOrder = []string{"tech", "business", "marketing", "finance", "sales"}

var industryVocabularies = map[string][]string{
	"tech": {
		"software", "engineer", "developer", "programming", "code", "api",
		"database", "cloud", "devops", "agile", "backend", "frontend",
		"full stack", "machine learning", "data", "infrastructure", "testing",
		"deployment", "architecture", "microservices",
	},
	"business": {
		"strategy", "operations", "management", "stakeholder", "process",
		"analysis", "consulting", "project management", "kpi", "roadmap",
		"cross-functional", "budget", "planning", "leadership", "business development",
	},
	"marketing": {
		"marketing", "brand", "campaign", "seo", "content", "social media",
		"analytics", "engagement", "advertising", "conversion", "audience",
		"email marketing", "growth", "creative", "copywriting",
	},
	"finance": {
		"finance", "accounting", "audit", "portfolio", "investment",
		"forecasting", "financial analysis", "compliance", "risk", "valuation",
		"reconciliation", "budgeting", "equity", "tax", "reporting",
	},
	"sales": {
		"sales", "pipeline", "quota", "prospecting", "crm", "negotiation",
		"closing", "account management", "lead generation", "revenue",
		"territory", "upsell", "cold calling", "customer relationship", "deals",
	},
}

// programmingLanguages earn extra keyword credit when the tech industry wins.
var programmingLanguages = []string{
	"python", "java", "javascript", "typescript", "go", "golang", "rust",
	"c++", "c#", "ruby", "php", "swift", "kotlin", "scala", "sql", "html", "css",
}

// frameworks earn extra keyword credit when the tech industry wins.
var frameworks = []string{
	"react", "angular", "vue", "django", "flask", "spring", "rails",
	"express", "node", "kubernetes", "docker", "terraform", "pytorch", "tensorflow",
}

// softSkills balance out hard keywords in both the keyword and skills analyzers.
var softSkills = []string{
	"communication", "teamwork", "collaboration", "leadership", "problem solving",
	"adaptability", "time management", "critical thinking", "mentoring", "presentation",
}

// Keyword stuffing threshold: flagged when industry keyword density exceeds 5%.
const stuffingDensityThreshold = 0.05

// jobTitleKeywords signal work experience entries.
var jobTitleKeywords = []string{
	"engineer", "developer", "manager", "director", "analyst", "consultant",
	"specialist", "coordinator", "lead", "architect", "designer", "administrator",
	"intern", "associate", "officer", "president", "founder", "head of",
}

// Date-range patterns: "2019 - 2022", "2020 - present", and "January 2021".
var (
	yearRangeRe = regexp.MustCompile(`(?i)\b(19|20)\d{2}\s*[-–—]\s*((19|20)\d{2}|present|current)\b`)
	monthYearRe = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\.?\s+(19|20)\d{2}\b`)
)

// companySuffixes signal employer names.
var companySuffixes = []string{
	"inc.", "llc", "ltd", "corp", "corporation", "company", "gmbh", "technologies", "labs", "solutions",
}

// promotionLanguage signals career growth.
var promotionLanguage = []string{
	"promoted", "promotion", "advanced to", "elevated to", "progressed to",
}

// tenureLanguage signals sustained employment.
var tenureLanguage = []string{
	"years of experience", "year tenure", "over the course of", "long-term",
}

// Education vocabulary
var (
	degreeKeywords = []string{
		"bachelor", "master", "phd", "ph.d", "doctorate", "b.s.", "b.a.",
		"m.s.", "m.a.", "mba", "bsc", "msc", "associate degree", "b.e.", "m.e.",
	}
	institutionKeywords = []string{
		"university", "college", "institute", "school of", "academy", "polytechnic",
	}
	honorsKeywords = []string{
		"summa cum laude", "magna cum laude", "cum laude", "honors", "dean's list",
		"valedictorian", "scholarship",
	}
	certificationKeywords = []string{
		"certified", "certification", "certificate", "aws certified", "pmp",
		"cpa", "cfa", "comptia", "cissp", "scrum master",
	}
	gpaRe = regexp.MustCompile(`(?i)gpa[:\s]*([0-4]\.\d{1,2})`)
)

// Skill list separators. Item count is estimated by the maximum split count
// across these separators.
var skillSeparators = []string{",", "|", "•", ";", "·", "/"}

// proficiencyLanguage signals skill-level annotations.
var proficiencyLanguage = []string{
	"proficient", "expert", "advanced", "intermediate", "familiar", "fluent", "experienced in",
}

// technicalStacks contribute up to 10 points each to the stack-depth bonus,
// capped at 30 in total.
var technicalStacks = map[string][]string{
	"frontend": {"react", "angular", "vue", "html", "css", "javascript", "typescript"},
	"backend":  {"node", "django", "spring", "rails", "express", "go", "java", "python", "api"},
	"database": {"sql", "postgresql", "mysql", "mongodb", "redis", "dynamodb", "sqlite"},
	"cloud":    {"aws", "azure", "gcp", "google cloud", "cloud", "s3", "lambda", "ec2"},
	"devops":   {"docker", "kubernetes", "terraform", "ci/cd", "jenkins", "ansible", "github actions"},
}

// stackOrder fixes iteration order for deterministic detail strings.
var stackOrder = []string{"frontend", "backend", "database", "cloud", "devops"}

// problematicSymbols are non-ASCII characters many ATS parsers mangle.
// Each distinct symbol found costs 5 points.
var problematicSymbols = []string{
	"★", "☆", "✓", "✔", "➤", "►", "◆", "●", "■", "♦", "☎", "✉", "⚡", "→", "⇒",
}

// Emergency fallback keyword credit (used by the hybrid engine's tier 4).
var (
	// EmailRe is the shared email pattern.
	EmailRe = emailRe
	// PhoneRe is the shared phone pattern.
	PhoneRe = phoneRe
)
