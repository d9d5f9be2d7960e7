package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New は共通ミドルウェアを載せたechoを返す。
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	//アクセスログとpanic回収
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
