package router

import (
	"github.com/grainworks/portfolio-api/internal/application"
	"github.com/grainworks/portfolio-api/internal/container"
	pginfra "github.com/grainworks/portfolio-api/internal/infrastructure/postgres"
	handlers "github.com/grainworks/portfolio-api/internal/interface/http"
	"github.com/grainworks/portfolio-api/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	sessions := pginfra.NewSessionRepository(pool)
	roadmaps := pginfra.NewRoadmapRepository(pool)
	milestones := pginfra.NewMilestoneRepository(pool)
	plans := pginfra.NewDailyPlanRepository(pool)
	goals := pginfra.NewDailyGoalRepository(pool)
	artifacts := pginfra.NewArtifactRepository(pool)
	projects := pginfra.NewProjectRepository(pool)

	cache := application.NewViewCache(container.GetRedis(), cfg.ViewCacheTTL, logger)
	search := application.NewArtifactIndex(container.GetES(), cfg.ESArtifactsIndex, logger)

	authSvc := application.NewAuthService(users, sessions, cfg.SessionTTL, container.GetRabbitPub(), logger)
	roadmapSvc := application.NewRoadmapService(roadmaps, milestones, logger)
	dailySvc := application.NewDailyService(plans, goals, logger)
	artifactSvc := application.NewArtifactService(artifacts, milestones, goals, container.GetStorage(), cache, search, logger)
	projectSvc := application.NewProjectService(projects, artifacts, container.GetStorage(), cache, logger)
	portfolioSvc := application.NewPortfolioService(artifacts, projects, cache, search, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	roadmapHandler := handlers.NewRoadmapHandler(roadmapSvc, logger)
	dailyHandler := handlers.NewDailyHandler(dailySvc, logger)
	artifactHandler := handlers.NewArtifactHandler(artifactSvc, logger)
	projectHandler := handlers.NewProjectHandler(projectSvc, logger)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, authSvc))
	r.Add(modules.NewRoadmapModule(roadmapHandler, authSvc))
	r.Add(modules.NewDailyModule(dailyHandler, authSvc))
	r.Add(modules.NewArtifactModule(artifactHandler, authSvc))
	r.Add(modules.NewProjectModule(projectHandler, authSvc))
	r.Add(modules.NewPortfolioModule(portfolioHandler))
}
