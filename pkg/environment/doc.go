// Package environment carries the deployment stage (development, staging or
// production) through context.Context and into structured logs.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
//
//	if environment.IsDevelopment(r.Context()) {
//		// include error details in responses
//	}
package environment
