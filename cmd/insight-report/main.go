package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/uglybaby/memo-engine/internal/database"
	"github.com/uglybaby/memo-engine/internal/insights"
	"github.com/uglybaby/memo-engine/internal/models"
	"github.com/uglybaby/memo-engine/internal/repository"
	"github.com/uglybaby/memo-engine/pkg/config"
)

func main() {
	companyFlag := flag.String("company", "", "company ID to report on (default: all)")
	limitFlag := flag.Int("limit", 50, "max companies to report on")
	flag.Parse()

	fmt.Println("📊 Memo Engine Insight Report")
	fmt.Println("=============================")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	repos := repository.NewRepositories(db.DB)
	engine := insights.NewEngine()

	var companies []models.Company
	if *companyFlag != "" {
		id, err := uuid.Parse(*companyFlag)
		if err != nil {
			log.Fatalf("Invalid company ID %q: %v", *companyFlag, err)
		}
		company, err := repos.Company.GetByID(id)
		if err != nil {
			log.Fatalf("Failed to load company: %v", err)
		}
		companies = []models.Company{*company}
	} else {
		companies, err = repos.Company.GetAll(repository.CompanyFilters{Limit: *limitFlag})
		if err != nil {
			log.Fatalf("Failed to load companies: %v", err)
		}
	}

	if len(companies) == 0 {
		fmt.Println("No companies found.")
		return
	}

	for _, company := range companies {
		reportCompany(repos, engine, &company)
	}

	fmt.Printf("\n✅ Reported on %d companies\n", len(companies))
}

func reportCompany(repos *repository.Repositories, engine *insights.Engine, company *models.Company) {
	fmt.Printf("\n🏢 %s (%s)\n", company.Name, company.Stage)

	answers, err := repos.Questionnaire.GetByCompany(company.ID)
	if err != nil {
		fmt.Printf("   ⚠️  Failed to load answers: %v\n", err)
		return
	}

	byKey := make(map[string]string, len(answers))
	for _, answer := range answers {
		byKey[answer.QuestionKey] = answer.Answer
	}

	diff := engine.ComputeDifferentiation(byKey[models.QuestionSolution], byKey[models.QuestionProblem], company.Name)
	fmt.Printf("   • Differentiation: %d/100", diff.Score)
	if len(diff.Suggestions) > 0 {
		fmt.Printf(" (%d suggestions)", len(diff.Suggestions))
	}
	fmt.Println()

	momentum := engine.ComputeMomentum(byKey[models.QuestionTraction], company.Stage)
	fmt.Printf("   • Momentum: %d/100 [%s]\n", momentum.Score, momentum.Trajectory)

	memo, err := repos.Memo.GetLatestByCompany(company.ID)
	if err != nil {
		fmt.Println("   • Action plan: no memo generated yet")
		return
	}

	plan := engine.ExtractActionPlan(&memo.Content, memo.QuickTake)
	fmt.Printf("   • Action plan: %d items, urgency %s\n", len(plan.Items), plan.OverallUrgency)
	for _, item := range plan.Items {
		fmt.Printf("     %d. [%s] %s\n", item.Priority, item.Category, item.Problem)
	}
}
