package main

import "github.com/strideroute/stride"

func main() {
	app := stride.NewApp()
	app.Get("/", func(c *stride.Context) error {
		return c.SendJSON(map[string]string{"message": "Hello, World"})
	})
	app.Get("/users/{id:[0-9]+}", func(c *stride.Context) error {
		return c.SendJSON(map[string]int{"id": stride.ParamAs[int](c, "id")})
	})
	app.Get("/static/*", func(c *stride.Context) error {
		return c.SendString(c.Param("rest"))
	})
	app.Run(":3000")
}
