package careersetu

import "time"

// RecommendQuery describes what the learner is looking for.
// Zero NSQFLevel and MaxDuration mean "any". TopN is clamped to [1, 10]
// and defaults to 5.
type RecommendQuery struct {
	Skills      string
	Interest    string
	NSQFLevel   int
	MaxDuration int // months
	JobRole     string
	TopN        int
}

// Recommendation is one ranked course.
type Recommendation struct {
	Rank          int
	CourseID      string
	CourseName    string
	Sector        string
	SkillsCovered string
	NSQFLevel     int
	Duration      string
	JobRole       string
	Similarity    float64
	Score         float64
	Normalized    float64
	MatchQuality  string // "High", "Medium" or "Low"
}

// RecommenderStatus reports the loaded recommender model.
type RecommenderStatus struct {
	Loaded         bool
	CoursesIndexed int
	VocabularySize int
	BuiltAt        time.Time
}

// CourseSuggestion is a course that teaches missing skills.
type CourseSuggestion struct {
	CourseID   string
	CourseName string
	Sector     string
	Duration   string
	NSQFLevel  int
	Overlap    int
}

// SkillGapReport compares a learner's skills with a job role.
type SkillGapReport struct {
	RequestedRole string
	MatchedRole   string
	Sector        string
	NSQFLevel     int
	Required      []string
	Matched       []string
	Missing       []string
	SkillMatchPct float64
	JobReadyPct   float64
	JobReady      bool
	Suggestions   []CourseSuggestion
}

// JobRole is a role from job_roles.csv.
type JobRole struct {
	Name      string
	Sector    string
	NSQFLevel int
}

// Progression is the NSQF progression verdict for a learner.
// When MaxLevelReached is set only CurrentLevel, Status and Message are filled.
type Progression struct {
	CurrentLevel    int
	MaxLevelReached bool
	Status          string
	Message         string
	NextLevel       int
	NextLevelSkills string
	SkillScorePct   float64
	Verdict         string // "Promote" or "Upskill"
	TargetLevel     int
	Recommendation  string
	LateralRoles    []string
	Pathway         []string
}

// Forecast is the predicted market for a skill in a year.
type Forecast struct {
	Skill          string
	TargetYear     int
	HasData        bool
	Status         string
	DemandScore    int64
	SalaryEstimate int64
	GrowthPct      string
	ModelType      string
}

// LearnerInput is the background a learning pathway is built from.
type LearnerInput struct {
	Qualification     string
	TechnicalSkills   []string
	TargetRole        string
	PreferredIndustry string
}

// PathwayStep is one stage of a learning pathway.
type PathwayStep struct {
	Name        string
	Description string
	Duration    string
}

// Pathway is a personalised learning plan.
type Pathway struct {
	Summary        string
	NSQFLevel      int
	Justification  string
	Steps          []PathwayStep
	SkillGap       []string
	Timeline       string
	EntryRole      string
	MidRole        string
	Specialization string
}
