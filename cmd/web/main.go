package main

import "ayuteng_backend/internal/app"

func main() {
	app.Run()
}
