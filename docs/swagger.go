package docs

// @title JobMate API
// @version 1.0
// @description Career assistant backend: CV and cover letter generation, job search, interview coaching and job alerts.

// @contact.name JobMate Support

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
