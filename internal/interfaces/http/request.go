package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
)

// parseBody decodifica el JSON del cuerpo; cualquier fallo es errInvalidBody.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return nil
}

// pageFromQuery lee ?page y ?limit; la normalización queda en el caso de uso.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Page:  c.QueryInt("page", dto.DefaultPage),
		Limit: c.QueryInt("limit", dto.DefaultLimit),
	}
}

// sendFile responde un adjunto binario.
func sendFile(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}
