package textproc

import (
	"regexp"
	"strings"

	"atscore/internal/errors"
)

// Skill is one canonical lexicon entry. The matcher tests the text for the
// ID, the display name, and every synonym, whole-word.
type Skill struct {
	ID       string   `json:"id" mapstructure:"id"`
	Name     string   `json:"name" mapstructure:"name"`
	Synonyms []string `json:"synonyms,omitempty" mapstructure:"synonyms"`
}

type compiledSkill struct {
	id       string
	patterns []*regexp.Regexp
}

// Matcher matches text against a skill lexicon. Immutable after
// construction, safe for concurrent use.
type Matcher struct {
	skills []compiledSkill
}

// boundary treats + and # as word characters so "c++" and "c#" match whole,
// while "." splits tokens so "java" does not match inside "java.util" but
// "node.js" still matches as a literal.
const boundaryClass = `[a-z0-9+#]`

// NewMatcher compiles a lexicon into a Matcher. Lexicon order is preserved:
// earlier entries report first, which also gives longest-name entries placed
// first precedence in the output.
func NewMatcher(skills []Skill) (*Matcher, error) {
	if len(skills) == 0 {
		return nil, errors.NewValidationError(errors.ErrCodeLexiconUnusable, "skill lexicon is empty", nil)
	}
	m := &Matcher{skills: make([]compiledSkill, 0, len(skills))}
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		if s.ID == "" {
			return nil, errors.NewValidationError(errors.ErrCodeLexiconUnusable, "skill entry has empty id", nil)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, errors.NewValidationError(errors.ErrCodeLexiconUnusable, "duplicate skill id", nil).
				WithContext("id", s.ID)
		}
		seen[s.ID] = struct{}{}

		variants := make([]string, 0, len(s.Synonyms)+2)
		variants = append(variants, s.ID)
		if s.Name != "" && !strings.EqualFold(s.Name, s.ID) {
			variants = append(variants, s.Name)
		}
		variants = append(variants, s.Synonyms...)

		cs := compiledSkill{id: s.ID}
		for _, v := range variants {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" {
				continue
			}
			p, err := regexp.Compile(`(?:^|` + "[^a-z0-9+#]" + `)` + regexp.QuoteMeta(v) + `(?:$|` + "[^a-z0-9+#]" + `)`)
			if err != nil {
				return nil, errors.NewInternalError(errors.ErrCodeLexiconUnusable, "skill pattern failed to compile", err).
					WithContext("skill", s.ID).WithContext("variant", v)
			}
			cs.patterns = append(cs.patterns, p)
		}
		m.skills = append(m.skills, cs)
	}
	return m, nil
}

// Match returns the deduplicated skill ids found in the text, in lexicon
// order. Matching is case-insensitive and whole-word.
func (m *Matcher) Match(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, cs := range m.skills {
		for _, p := range cs.patterns {
			if p.MatchString(lower) {
				matched = append(matched, cs.id)
				break
			}
		}
	}
	return matched
}

// MatchSet is Match returned as a membership set
func (m *Matcher) MatchSet(text string) map[string]struct{} {
	ids := m.Match(text)
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Len reports the lexicon size
func (m *Matcher) Len() int {
	return len(m.skills)
}

// DefaultLexicon is the built-in canonical skill lexicon. Multi-word and
// compound names come before their shorter relatives so longest-match
// precedence holds in the output ordering.
func DefaultLexicon() []Skill {
	return []Skill{
		// Languages
		{ID: "javascript", Name: "JavaScript", Synonyms: []string{"js", "ecmascript"}},
		{ID: "typescript", Name: "TypeScript", Synonyms: []string{"ts"}},
		{ID: "python", Name: "Python"},
		{ID: "java", Name: "Java"},
		{ID: "go", Name: "Go", Synonyms: []string{"golang"}},
		{ID: "rust", Name: "Rust"},
		{ID: "c++", Name: "C++", Synonyms: []string{"cpp"}},
		{ID: "c#", Name: "C#", Synonyms: []string{"csharp"}},
		{ID: "ruby", Name: "Ruby"},
		{ID: "php", Name: "PHP"},
		{ID: "swift", Name: "Swift"},
		{ID: "kotlin", Name: "Kotlin"},
		{ID: "scala", Name: "Scala"},
		{ID: "sql", Name: "SQL"},
		{ID: "html", Name: "HTML"},
		{ID: "css", Name: "CSS"},
		// Frontend
		{ID: "react", Name: "React", Synonyms: []string{"reactjs", "react.js"}},
		{ID: "angular", Name: "Angular", Synonyms: []string{"angularjs"}},
		{ID: "vue", Name: "Vue", Synonyms: []string{"vuejs", "vue.js"}},
		{ID: "svelte", Name: "Svelte"},
		{ID: "next.js", Name: "Next.js", Synonyms: []string{"nextjs"}},
		// Backend
		{ID: "node.js", Name: "Node.js", Synonyms: []string{"nodejs", "node"}},
		{ID: "express", Name: "Express", Synonyms: []string{"expressjs"}},
		{ID: "django", Name: "Django"},
		{ID: "flask", Name: "Flask"},
		{ID: "fastapi", Name: "FastAPI"},
		{ID: "spring", Name: "Spring", Synonyms: []string{"spring boot"}},
		{ID: "rails", Name: "Rails", Synonyms: []string{"ruby on rails"}},
		{ID: "laravel", Name: "Laravel"},
		{ID: ".net", Name: ".NET", Synonyms: []string{"dotnet", "asp.net"}},
		{ID: "graphql", Name: "GraphQL"},
		{ID: "rest", Name: "REST", Synonyms: []string{"restful"}},
		{ID: "grpc", Name: "gRPC"},
		// Cloud and infrastructure
		{ID: "aws", Name: "AWS", Synonyms: []string{"amazon web services"}},
		{ID: "azure", Name: "Azure"},
		{ID: "gcp", Name: "GCP", Synonyms: []string{"google cloud"}},
		{ID: "docker", Name: "Docker"},
		{ID: "kubernetes", Name: "Kubernetes", Synonyms: []string{"k8s"}},
		{ID: "terraform", Name: "Terraform"},
		{ID: "ansible", Name: "Ansible"},
		{ID: "jenkins", Name: "Jenkins"},
		{ID: "ci/cd", Name: "CI/CD", Synonyms: []string{"cicd", "continuous integration", "continuous delivery", "github actions", "gitlab ci"}},
		{ID: "linux", Name: "Linux"},
		{ID: "nginx", Name: "Nginx"},
		// Data stores and pipelines
		{ID: "postgresql", Name: "PostgreSQL", Synonyms: []string{"postgres"}},
		{ID: "mysql", Name: "MySQL"},
		{ID: "mongodb", Name: "MongoDB", Synonyms: []string{"mongo"}},
		{ID: "redis", Name: "Redis"},
		{ID: "elasticsearch", Name: "Elasticsearch"},
		{ID: "sqlite", Name: "SQLite"},
		{ID: "dynamodb", Name: "DynamoDB"},
		{ID: "cassandra", Name: "Cassandra"},
		{ID: "kafka", Name: "Kafka"},
		{ID: "rabbitmq", Name: "RabbitMQ"},
		{ID: "spark", Name: "Spark"},
		{ID: "hadoop", Name: "Hadoop"},
		{ID: "airflow", Name: "Airflow"},
		{ID: "etl", Name: "ETL"},
		// ML
		{ID: "machine learning", Name: "Machine Learning", Synonyms: []string{"ml"}},
		{ID: "deep learning", Name: "Deep Learning"},
		{ID: "nlp", Name: "NLP", Synonyms: []string{"natural language processing"}},
		{ID: "tensorflow", Name: "TensorFlow"},
		{ID: "pytorch", Name: "PyTorch"},
		{ID: "pandas", Name: "Pandas"},
		{ID: "numpy", Name: "NumPy"},
		{ID: "scikit-learn", Name: "scikit-learn", Synonyms: []string{"sklearn"}},
		{ID: "data science", Name: "Data Science"},
		// Practices
		{ID: "microservices", Name: "Microservices"},
		{ID: "serverless", Name: "Serverless"},
		{ID: "agile", Name: "Agile", Synonyms: []string{"scrum", "kanban"}},
		{ID: "devops", Name: "DevOps"},
		{ID: "tdd", Name: "TDD", Synonyms: []string{"test-driven development"}},
		{ID: "git", Name: "Git"},
	}
}

// DefaultMatcher builds a Matcher over the built-in lexicon. The default
// lexicon always compiles.
func DefaultMatcher() *Matcher {
	m, err := NewMatcher(DefaultLexicon())
	if err != nil {
		panic(err)
	}
	return m
}
