// @title           Jigz API
// @version         1.0
// @description     API маркетплейса локальных услуг: задания, отклики, монетная экономика.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "jigz_backend/internal/app"

func main() {
	app.Run()
}
