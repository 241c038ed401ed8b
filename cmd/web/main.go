// Command web запускает сервисы платформы прослушиваний.
// Набор модулей (user, audition, media) задается server.modules или SERVER_MODULES.
package main

import "audition_backend/internal/app"

func main() {
	app.Run()
}
