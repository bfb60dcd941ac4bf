package container

import (
	app "github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/application"
	"github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/domain/port"
)

// Container собирает сервисы приложения в одну точку внедрения зависимостей.
type Container struct {
	UserService       *app.UserService
	InspectionService *app.InspectionService
}

// New создаёт контейнер. Тяжёлые ресурсы (детектор, описатель)
// конструируются снаружи один раз и живут столько же, сколько процесс.
func New(userRepo port.UserRepository, detector port.DefectDetector, describer, fallback port.DefectDescriber, cfg app.InspectionConfig) *Container {
	userService := app.NewUserService(userRepo)
	inspectionService := app.NewInspectionService(detector, describer, fallback, cfg)

	return &Container{
		UserService:       userService,
		InspectionService: inspectionService,
	}
}
