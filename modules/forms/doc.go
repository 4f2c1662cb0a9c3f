// Package forms serves the registration form in several variants.
//
// Every variant posts to the same validator and the same user creator. They
// differ in when fields are checked (on blur, while typing after a first
// submit, or on submit only) and in what a submit answers with. Requests
// from datastar get signal and element patches over SSE; plain HTML form
// posts get full pages; JSON clients get JSON.
//
//	svc := forms.NewService(validator, creator, errorHandler, forms.WithLogger(log))
//	r.Mount("/", svc.Handle())
package forms
