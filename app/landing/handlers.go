package landing

import (
	"fmt"

	"github.com/dmitrymomot/landing/core/handler"
	"github.com/dmitrymomot/landing/core/response"
)

const userIDCookie = "user_id"

func hello(ctx *Context) handler.Response {
	return response.String("Hello, world!")
}

func earth(ctx *Context) handler.Response {
	return response.String("You've landed in earth")
}

// earthContinent echoes the segment as sent, without percent-decoding.
func earthContinent(ctx *Context) handler.Response {
	return response.String(fmt.Sprintf("You've landed in earth at %s continent", ctx.RawParam("continent")))
}

// page echoes the normalized wildcard path.
func page(ctx *Context) handler.Response {
	return response.String("You've landed in page: " + ctx.Param("path"))
}

func setUserID(ctx *Context) handler.Response {
	id := ctx.Param("id")
	if err := ctx.Cookies().AddPrivate(userIDCookie, id); err != nil {
		return response.Error(response.ErrBadRequest.WithError(err))
	}
	return response.String(fmt.Sprintf("Cookie %s set to %s", userIDCookie, id))
}

func getUserID(ctx *Context) handler.Response {
	id, ok := ctx.Cookies().Private(userIDCookie)
	if !ok {
		return response.Error(response.ErrUnauthorized.WithMessage("user_id cookie is missing or invalid"))
	}
	return response.String("Your user_id is " + id)
}

type submission struct {
	Name     string `form:"name,required"`
	Age      uint8  `form:"age,required"`
	Email    string `form:"email,required"`
	Password string `form:"password,required"`
}

func doSomething(ctx *Context) handler.Response {
	var s submission
	if err := ctx.BindForm(&s); err != nil {
		return response.Error(err)
	}
	return response.String(fmt.Sprintf("Name: %s, Age: %d, Email: %s, Password: %s",
		s.Name, s.Age, s.Email, s.Password))
}

type person struct {
	Name string `json:"name,required"`
	Age  uint8  `json:"age,required"`
}

func echoJSON(ctx *Context) handler.Response {
	var p person
	if err := ctx.BindJSON(&p); err != nil {
		return response.Error(err)
	}
	return response.String(fmt.Sprintf("Name: %s, Age: %d", p.Name, p.Age))
}

type credentials struct {
	Username string `query:"username,required"`
	Password string `query:"password,required"`
}

func auth(ctx *Context) handler.Response {
	var c credentials
	if err := ctx.BindQuery(&c); err != nil {
		return response.Error(err)
	}
	return response.String(fmt.Sprintf("Username: %s, Password: %s", c.Username, c.Password))
}

type greeting struct {
	ID uint64 `path:"id,required"`
}

func accept(ctx *Context) handler.Response {
	var g greeting
	if err := ctx.BindPath(&g); err != nil {
		return response.Error(err)
	}
	return response.Accepted(fmt.Sprintf("Hello %d", g.ID))
}
