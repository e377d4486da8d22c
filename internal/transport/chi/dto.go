package chi

import (
	"math"
	"strconv"
	"time"

	"github.com/kailas-cloud/careersetu/internal/domain/account"
	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
	"github.com/kailas-cloud/careersetu/internal/domain/recommendation"
	authuc "github.com/kailas-cloud/careersetu/internal/usecase/auth"
	marketuc "github.com/kailas-cloud/careersetu/internal/usecase/market"
	profilinguc "github.com/kailas-cloud/careersetu/internal/usecase/profiling"
	progressionuc "github.com/kailas-cloud/careersetu/internal/usecase/progression"
	recommenduc "github.com/kailas-cloud/careersetu/internal/usecase/recommend"
	skillgapuc "github.com/kailas-cloud/careersetu/internal/usecase/skillgap"
)

// --- Recommender ---

type predictRequest struct {
	Skills      string `json:"skills"`
	Interest    string `json:"interest"`
	NSQFLevel   int    `json:"nsqf_level" validate:"gte=0,lte=10"`
	MaxDuration int    `json:"max_duration" validate:"gte=0"`
	JobRole     string `json:"job_role"`
	TopN        *int   `json:"top_n"`
}

type profileRecommendRequest struct {
	Skills   *string `json:"skills"`
	Interest *string `json:"interest"`
	TopN     *int    `json:"top_n"`
}

type queryEcho struct {
	Skills      string `json:"skills"`
	Interest    string `json:"interest"`
	NSQFLevel   int    `json:"nsqf_level,omitempty"`
	MaxDuration int    `json:"max_duration,omitempty"`
	JobRole     string `json:"job_role,omitempty"`
}

type recommendationItem struct {
	Rank            int     `json:"rank"`
	CourseID        string  `json:"course_id"`
	CourseName      string  `json:"course_name"`
	Sector          string  `json:"sector"`
	SkillsCovered   string  `json:"skills_covered"`
	NSQFLevel       int     `json:"nsqf_level"`
	Duration        string  `json:"duration"`
	JobRole         string  `json:"job_role"`
	SimilarityScore float64 `json:"similarity_score"`
	Score           float64 `json:"score"`
	NormalizedScore float64 `json:"normalized_score"`
	MatchQuality    string  `json:"match_quality"`
}

type predictResponse struct {
	Recommendations []recommendationItem `json:"recommendations"`
	Total           int                  `json:"total"`
	Query           queryEcho            `json:"query"`
}

type trainResponse struct {
	Message        string `json:"message"`
	CoursesIndexed int    `json:"courses_indexed"`
}

type recommenderStatusResponse struct {
	Status            string     `json:"status"`
	CoursesIndexed    int        `json:"courses_indexed"`
	VocabularySize    int        `json:"vocabulary_size"`
	BuiltAt           *time.Time `json:"built_at,omitempty"`
	SourceFingerprint string     `json:"source_fingerprint,omitempty"`
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func recommendationsToDTO(recs []recommendation.Recommendation, q recommendation.Query) predictResponse {
	items := make([]recommendationItem, len(recs))
	for i, r := range recs {
		items[i] = recommendationItem{
			Rank:            r.Rank,
			CourseID:        r.Course.ID,
			CourseName:      r.Course.Name,
			Sector:          r.Course.Sector,
			SkillsCovered:   r.Course.Skills,
			NSQFLevel:       r.Course.NSQFLevel,
			Duration:        r.Course.Duration,
			JobRole:         r.Course.JobRole,
			SimilarityScore: round4(r.Similarity),
			Score:           round4(r.Score),
			NormalizedScore: round4(r.Normalized),
			MatchQuality:    string(r.Quality),
		}
	}
	return predictResponse{
		Recommendations: items,
		Total:           len(items),
		Query: queryEcho{
			Skills:      q.Skills(),
			Interest:    q.Interest(),
			NSQFLevel:   q.NSQFLevel(),
			MaxDuration: q.MaxDuration(),
			JobRole:     q.JobRole(),
		},
	}
}

func recommenderStatusToDTO(st recommenduc.Status) recommenderStatusResponse {
	resp := recommenderStatusResponse{
		Status:            "not_loaded",
		CoursesIndexed:    st.CoursesIndexed,
		VocabularySize:    st.VocabularySize,
		SourceFingerprint: st.SourceFingerprint,
	}
	if st.Loaded {
		resp.Status = "loaded"
	}
	if !st.BuiltAt.IsZero() {
		t := st.BuiltAt.UTC()
		resp.BuiltAt = &t
	}
	return resp
}

// --- Skill gap ---

type analyzeRequest struct {
	LearnerSkills []string `json:"learner_skills"`
	TargetRole    string   `json:"target_role" validate:"required"`
	TopN          *int     `json:"top_n"`
}

type suggestionItem struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Sector     string `json:"sector"`
	Duration   string `json:"duration"`
	NSQFLevel  int    `json:"nsqf_level"`
}

type analyzeResponse struct {
	TargetRole          string           `json:"target_role"`
	RequestedRole       string           `json:"requested_role"`
	Sector              string           `json:"sector"`
	NSQFLevel           int              `json:"nsqf_level"`
	RequiredSkills      []string         `json:"required_skills"`
	MatchedSkills       []string         `json:"matched_skills"`
	MissingSkills       []string         `json:"missing_skills"`
	SkillMatchPct       float64          `json:"skill_match_pct"`
	JobReadyPct         float64          `json:"job_ready_pct"`
	JobReady            bool             `json:"job_ready"`
	TotalRequired       int              `json:"total_required"`
	TotalMatched        int              `json:"total_matched"`
	TotalMissing        int              `json:"total_missing"`
	TrainingSuggestions []suggestionItem `json:"training_suggestions"`
}

type rebuildResponse struct {
	Message      string `json:"message"`
	RolesIndexed int    `json:"roles_indexed"`
}

type roleItem struct {
	JobRole   string `json:"job_role"`
	Sector    string `json:"sector"`
	NSQFLevel int    `json:"nsqf_level"`
}

type rolesResponse struct {
	Roles []roleItem `json:"roles"`
	Total int        `json:"total"`
}

func analysisToDTO(a skillgapuc.Analysis) analyzeResponse {
	suggestions := make([]suggestionItem, len(a.Suggestions))
	for i, s := range a.Suggestions {
		suggestions[i] = suggestionItem{
			CourseID:   s.CourseID,
			CourseName: s.CourseName,
			Sector:     s.Sector,
			Duration:   s.Duration,
			NSQFLevel:  s.NSQFLevel,
		}
	}
	return analyzeResponse{
		TargetRole:          a.MatchedRole,
		RequestedRole:       a.TargetRole,
		Sector:              a.Sector,
		NSQFLevel:           a.NSQFLevel,
		RequiredSkills:      a.Required,
		MatchedSkills:       a.Matched,
		MissingSkills:       a.Missing,
		SkillMatchPct:       a.SkillMatchPct,
		JobReadyPct:         a.JobReadyPct,
		JobReady:            a.JobReady,
		TotalRequired:       a.TotalRequired,
		TotalMatched:        len(a.Matched),
		TotalMissing:        len(a.Missing),
		TrainingSuggestions: suggestions,
	}
}

func rolesToDTO(roles []catalog.JobRole) rolesResponse {
	items := make([]roleItem, len(roles))
	for i, r := range roles {
		items[i] = roleItem{JobRole: r.Name, Sector: r.Sector, NSQFLevel: r.NSQFLevel}
	}
	return rolesResponse{Roles: items, Total: len(items)}
}

// --- NSQF progression ---

type progressRequest struct {
	CurrentLevel  *int     `json:"current_level" validate:"required"`
	LearnerSkills []string `json:"learner_skills"`
}

type maxLevelResponse struct {
	CurrentLevel int    `json:"current_level"`
	Status       string `json:"status"`
	Message      string `json:"message"`
}

type progressResponse struct {
	CurrentLevel   int      `json:"current_nsqf_level"`
	NextLevel      int      `json:"next_nsqf_level"`
	NextSkills     string   `json:"next_level_skills"`
	SkillScorePct  float64  `json:"skill_score_pct"`
	Result         string   `json:"progression_algorithm_result"`
	TargetLevel    int      `json:"target_level"`
	Recommendation string   `json:"recommendation"`
	Lateral        []string `json:"lateral_mobility_options"`
	Pathway        []string `json:"certification_stacking_pathway"`
}

func progressToDTO(p progressionuc.Progress) any {
	if p.MaxLevelReached {
		return maxLevelResponse{CurrentLevel: p.CurrentLevel, Status: p.Status, Message: p.Message}
	}
	return progressResponse{
		CurrentLevel:   p.CurrentLevel,
		NextLevel:      p.NextLevel,
		NextSkills:     p.NextLevelSkills,
		SkillScorePct:  p.SkillScorePct,
		Result:         p.Verdict,
		TargetLevel:    p.TargetLevel,
		Recommendation: p.Recommendation,
		Lateral:        p.Lateral,
		Pathway:        p.Pathway,
	}
}

// --- Job market ---

type marketRequest struct {
	Skill      string `json:"skill"`
	TargetYear int    `json:"target_year" validate:"required,gte=1900,lte=2200"`
}

type marketResponse struct {
	Skill          string `json:"skill"`
	TargetYear     int    `json:"target_year"`
	Status         string `json:"status,omitempty"`
	DemandScore    int64  `json:"demand_score"`
	SalaryEstimate int64  `json:"salary_estimate"`
	GrowthPct      string `json:"sector_growth_pct"`
	ModelType      string `json:"model_type,omitempty"`
}

type trackedSkillsResponse struct {
	TrackedSkills []string `json:"tracked_skills"`
}

func forecastToDTO(f marketuc.Forecast) marketResponse {
	return marketResponse{
		Skill:          f.Skill,
		TargetYear:     f.TargetYear,
		Status:         f.Status,
		DemandScore:    f.DemandScore,
		SalaryEstimate: f.SalaryEstimate,
		GrowthPct:      f.GrowthPct,
		ModelType:      f.ModelType,
	}
}

// --- Learner profiling ---

type pathwayRequest struct {
	AcademicInfo struct {
		HighestQualification string `json:"highest_qualification" validate:"required"`
		BackgroundStream     string `json:"background_stream"`
		PerformanceLevel     string `json:"performance_level"`
	} `json:"academic_info"`
	Skills struct {
		TechnicalSkills []string `json:"technical_skills"`
		SoftSkills      []string `json:"soft_skills"`
		DigitalLiteracy string   `json:"digital_literacy"`
	} `json:"skills"`
	SocioEconomic struct {
		Location             string `json:"location"`
		AccessToInternet     bool   `json:"access_to_internet"`
		FinancialConstraints bool   `json:"financial_constraints"`
		TimeAvailability     string `json:"time_availability"`
	} `json:"socio_economic"`
	LearningPreferences struct {
		Pace     string `json:"pace"`
		Language string `json:"language"`
		Mode     string `json:"mode"`
	} `json:"learning_preferences"`
	CareerAspirations struct {
		TargetRole        string `json:"target_role" validate:"required"`
		PreferredIndustry string `json:"preferred_industry"`
		ShortTermGoal     string `json:"short_term_goal"`
		LongTermGoal      string `json:"long_term_goal"`
	} `json:"career_aspirations"`
}

type pathwayStep struct {
	StepName    string `json:"step_name"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

type careerOutcomes struct {
	EntryLevel           string `json:"entry_level"`
	MidLevel             string `json:"mid_level"`
	FutureSpecialization string `json:"future_specialization"`
}

type pathwayResponse struct {
	LearnerSummary       string         `json:"learner_summary"`
	RecommendedNSQFLevel string         `json:"recommended_nsqf_level"`
	Justification        string         `json:"justification"`
	LearningPath         []pathwayStep  `json:"learning_path"`
	SkillGap             []string       `json:"skill_gap"`
	EstimatedTimeline    string         `json:"estimated_timeline"`
	CareerOutcomes       careerOutcomes `json:"career_outcomes"`
}

func (r pathwayRequest) toInput() profilinguc.Input {
	return profilinguc.Input{
		Qualification:     r.AcademicInfo.HighestQualification,
		TechnicalSkills:   r.Skills.TechnicalSkills,
		TargetRole:        r.CareerAspirations.TargetRole,
		PreferredIndustry: r.CareerAspirations.PreferredIndustry,
	}
}

func pathwayToDTO(p profilinguc.Pathway) pathwayResponse {
	steps := make([]pathwayStep, len(p.LearningPath))
	for i, s := range p.LearningPath {
		steps[i] = pathwayStep{StepName: s.Name, Description: s.Description, Duration: s.Duration}
	}
	return pathwayResponse{
		LearnerSummary:       p.Summary,
		RecommendedNSQFLevel: strconv.Itoa(p.NSQFLevel),
		Justification:        p.Justification,
		LearningPath:         steps,
		SkillGap:             p.SkillGap,
		EstimatedTimeline:    p.Timeline,
		CareerOutcomes: careerOutcomes{
			EntryLevel:           p.Outcomes.Entry,
			MidLevel:             p.Outcomes.Mid,
			FutureSpecialization: p.Outcomes.Specialization,
		},
	}
}

// --- Auth ---

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Username    string    `json:"username"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type meResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email,omitempty"`
	ProfileComplete bool      `json:"profile_complete"`
	CreatedAt       time.Time `json:"created_at"`
}

func tokenToDTO(t authuc.Token) tokenResponse {
	return tokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		Username:    t.Username,
		ExpiresAt:   t.ExpiresAt.UTC(),
	}
}

func userToDTO(u account.User) meResponse {
	return meResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		ProfileComplete: u.ProfileComplete,
		CreatedAt:       u.CreatedAt.UTC(),
	}
}
