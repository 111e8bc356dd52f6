package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	CoinHandler        *CoinHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
	SearchHandler      *SearchHandler
	ReviewHandler      *ReviewHandler
	ServiceHandler     *ServiceHandler
}
