// Package e2e exercises the full ingest, search, and ask pipeline in
// process: real SQLite storage, a real Bleve index, the in-memory vector
// cache, and a mock embedder.
package e2e

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

// SeedDocument is one document in the seeded corpus.
type SeedDocument struct {
	ID      string
	Title   string
	Content string
}

// SearchCase is a query and the document ID(s) of which at least one must
// appear in the search results.
type SearchCase struct {
	Query       string
	WantDocIDs  []string
	Description string
}

// AskCase is a question scoped to one document. Retrieval must return
// sources from that document's chunks.
type AskCase struct {
	Question    string
	DocumentID  string
	Description string
}

// Corpus holds seed documents plus derived search and ask cases.
type Corpus struct {
	Documents []SeedDocument
	Searches  []SearchCase
	Asks      []AskCase
}

// BuildCorpus returns a corpus of 100 documents. Each document carries a
// unique signature phrase so the cases can assert the correct document
// surfaces.
func BuildCorpus() *Corpus {
	docs := buildDocuments(100)
	searches := buildSearchCases(docs)
	return &Corpus{
		Documents: docs,
		Searches:  searches,
		Asks:      buildAskCases(searches),
	}
}

func buildDocuments(n int) []SeedDocument {
	topics := []struct {
		title   string
		content string
	}{
		{"Python Guide", "Python is a high-level programming language. Python programming language is used for web development and data science."},
		{"Kubernetes Docs", "Kubernetes is an open-source container orchestration platform. Kubernetes container orchestration automates deployment and scaling."},
		{"React Tutorial", "React is a JavaScript library. React hooks and components enable building user interfaces."},
		{"Go Language", "Go is a statically typed language. Go golang concurrency is achieved with goroutines and channels."},
		{"PostgreSQL Manual", "PostgreSQL is an advanced relational database. PostgreSQL relational database supports JSON and full-text search."},
		{"Docker Handbook", "Docker enables building and shipping applications. Docker container images are portable across environments."},
		{"Machine Learning", "Machine learning is a subset of AI. Production machine learning algorithms learn patterns from data."},
		{"Neural Networks", "Neural networks are inspired by the brain. Deep neural network architectures power modern AI."},
		{"REST API Design", "REST is an architectural style for APIs. REST API endpoints use HTTP methods and status codes."},
		{"GraphQL Overview", "GraphQL is a query language for APIs. GraphQL query language lets clients request exactly what they need."},
		{"TypeScript Handbook", "TypeScript adds static types to JavaScript. TypeScript type system catches errors at compile time."},
		{"Redis Cache", "Redis is an in-memory data store. Redis in-memory cache is used for sessions and caching."},
		{"Elasticsearch Guide", "Elasticsearch is a search and analytics engine. Elasticsearch full-text search scales horizontally."},
		{"AWS Lambda", "AWS Lambda runs code without servers. AWS Lambda serverless scales automatically."},
		{"Terraform IaC", "Terraform manages cloud infrastructure. Terraform infrastructure as code is declarative."},
		{"Prometheus Metrics", "Prometheus is a monitoring system. Prometheus monitoring metrics are time-series based."},
		{"gRPC Overview", "gRPC is a high-performance RPC framework. gRPC remote procedure calls use HTTP/2 and protobuf."},
		{"OAuth 2.0", "OAuth 2.0 is an authorization framework. OAuth 2.0 authorization enables secure delegated access."},
		{"JWT Tokens", "JWT is a compact token format. JWT JSON web tokens are used for authentication."},
		{"CI/CD Pipelines", "CI/CD automates build and deployment. CI/CD continuous integration runs tests on every commit."},
		{"Git Workflow", "Git is a distributed version control system. Git version control tracks changes in source code."},
		{"SQL Basics", "SQL is used to manage relational data. SQL structured query language has SELECT INSERT UPDATE DELETE."},
		{"Microservices", "Microservices split an app into small services. A microservices architecture enables independent deployment."},
		{"Kafka Streams", "Apache Kafka is a distributed event stream platform. Apache Kafka streaming handles high throughput."},
		{"Nginx Config", "Nginx is a web server and reverse proxy. Nginx reverse proxy balances load and serves static files."},
		{"Design Patterns", "Design patterns are reusable solutions. Design patterns software includes Singleton and Factory."},
		{"Database Indexing", "Indexes speed up queries. Database indexing performance is critical for large tables."},
		{"HTTPS TLS", "HTTPS encrypts web traffic. HTTPS TLS SSL certificates verify identity."},
		{"Load Balancing", "Load balancers distribute traffic. Load balancing high availability prevents single points of failure."},
		{"Caching Strategies", "Caching improves performance. Caching strategy cache invalidation must be designed carefully."},
		{"Unit Testing", "Unit tests verify small units of code. Unit testing mock isolates dependencies."},
		{"Semantic Search", "Semantic search uses meaning not just keywords. Dense semantic search embeddings capture context."},
		{"Keyword Search", "Keyword search matches terms. Classic keyword search engines use inverted full-text indexes."},
		{"Hybrid Search", "Hybrid combines keyword and semantic. Weighted hybrid search fusion improves recall."},
		{"Vector Database", "Vector DBs store embeddings. A vector database similarity metric uses cosine or dot product."},
		{"Embedding Models", "Embeddings represent text as vectors. Sentence embedding models transform text to dense vectors."},
		{"Chunking Strategy", "Chunking splits long documents. A chunking strategy with overlap preserves context."},
		{"RAG Overview", "RAG combines retrieval and generation. Grounding with RAG retrieval keeps LLM answers in the documents."},
		{"LLM Fine-tuning", "Fine-tuning adapts pre-trained models. LLM fine-tuning requires labeled training data."},
		{"Prompt Engineering", "Prompts guide model behavior. Good prompt engineering places few-shot examples in the prompt."},
		{"Message Queue", "Message queues decouple producers and consumers. Message queue asynchronous enables scaling."},
		{"Rate Limiting", "Rate limiting protects APIs. Rate limiting throttling can be per-user or global."},
		{"Circuit Breaker", "Circuit breaker stops cascading failures. Circuit breaker resilience pattern fails fast."},
		{"Logging Best Practices", "Structured logging aids debugging. Logging structured logs use JSON or key-value."},
		{"Distributed Tracing", "Tracing follows requests across services. Distributed tracing spans show latency breakdown."},
		{"Password Hashing", "Passwords must be hashed. Password hashing bcrypt is resistant to rainbow tables."},
		{"Backup Strategy", "Backups protect against data loss. Backup strategy recovery includes RTO and RPO."},
		{"Graceful Shutdown", "Graceful shutdown drains connections. A graceful shutdown handler listens for SIGTERM."},
		{"Health Check", "Health checks indicate readiness. Health check liveness is used by orchestrators."},
		{"Secrets Management", "Secrets must not be in code. Secrets management vault encrypts and audits."},
		{"Blue-Green Deployment", "Blue-green reduces deployment risk. Blue-green deployment keeps two environments."},
		{"Canary Release", "Canary rolls out to a subset. Canary release gradual reduces blast radius."},
		{"Incident Response", "Incidents need a clear process. Incident response runbook defines steps."},
		{"Observability", "Observability is metrics logs traces. Observability metrics logs help debug production."},
		{"Error Handling", "Errors must be handled. Error handling retry uses backoff strategies."},
		{"Code Review", "Code review catches bugs early. Code review pull request is a best practice."},
		{"Database Migration", "Migrations evolve schema. Database migration schema should be reversible when possible."},
		{"API Gateway", "API gateways sit in front of services. API gateway routing and rate limiting are common."},
		{"Service Mesh", "Service mesh manages service-to-service traffic. Service mesh Istio provides mTLS and observability."},
		{"Load Test", "Load tests simulate traffic. Load test performance finds limits."},
	}

	out := make([]SeedDocument, 0, n)
	for i := 0; i < n && i < len(topics); i++ {
		t := topics[i]
		out = append(out, SeedDocument{
			ID:      fmt.Sprintf("e2e-doc-%03d", i+1),
			Title:   t.title,
			Content: t.content,
		})
	}
	// Fill past the topic table with re-titled copies so the corpus still
	// reaches n documents.
	for len(out) < n {
		i := len(out)
		t := topics[i%len(topics)]
		out = append(out, SeedDocument{
			ID:      fmt.Sprintf("e2e-doc-%03d", i+1),
			Title:   fmt.Sprintf("%s (%d)", t.title, i+1),
			Content: t.content,
		})
	}
	return out
}

func buildSearchCases(docs []SeedDocument) []SearchCase {
	if len(docs) == 0 {
		return nil
	}
	// Each phrase appears in exactly one topic's signature sentence.
	phrases := []string{
		"Python programming", "Kubernetes container", "React hooks", "Go golang", "PostgreSQL relational",
		"Docker container", "machine learning", "neural network", "REST API", "GraphQL query",
		"TypeScript type", "Redis in-memory", "Elasticsearch full-text", "AWS Lambda", "Terraform infrastructure",
		"Prometheus monitoring", "gRPC remote", "OAuth 2.0", "JWT JSON", "CI/CD continuous",
		"Git version", "SQL structured", "microservices architecture", "Apache Kafka", "Nginx reverse",
		"semantic search", "keyword search", "hybrid search", "vector database", "embedding models",
		"chunking strategy", "RAG retrieval", "LLM fine-tuning", "prompt engineering", "graceful shutdown",
	}
	var cases []SearchCase
	used := make(map[string]bool)
	for _, p := range phrases {
		for _, d := range docs {
			if containsPhrase(d, p) && !used[d.ID] {
				cases = append(cases, SearchCase{
					Query:       p,
					WantDocIDs:  []string{d.ID},
					Description: fmt.Sprintf("query %q should return doc %s", p, d.ID),
				})
				used[d.ID] = true
				break
			}
		}
	}
	return cases
}

// buildAskCases turns the first few search cases into document-scoped
// questions. Retrieval inside a single document always works from that
// document's cached chunks, so the question text only has to be parseable.
func buildAskCases(searches []SearchCase) []AskCase {
	const maxAsks = 10
	var cases []AskCase
	for _, sc := range searches {
		if len(cases) >= maxAsks {
			break
		}
		docID := sc.WantDocIDs[0]
		cases = append(cases, AskCase{
			Question:    fmt.Sprintf("What does the document say about %s?", sc.Query),
			DocumentID:  docID,
			Description: fmt.Sprintf("ask about %q in doc %s", sc.Query, docID),
		})
	}
	return cases
}

func containsPhrase(d SeedDocument, phrase string) bool {
	return strings.Contains(d.Title, phrase) || strings.Contains(d.Content, phrase)
}

// DocumentInputs converts the corpus documents for indexing.
func (c *Corpus) DocumentInputs() []*models.DocumentInput {
	out := make([]*models.DocumentInput, len(c.Documents))
	for i := range c.Documents {
		d := &c.Documents[i]
		out[i] = &models.DocumentInput{
			ID:      d.ID,
			Title:   d.Title,
			Content: d.Content,
			Source:  "e2e-seed",
		}
	}
	return out
}
