package server

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/rsmanito/expense-cards/models"
)

func (s *Server) handleListCards(c fiber.Ctx) error {
	cards, err := s.service.ListCards(c.Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(cards)
}

func (s *Server) handleCreateCard(c fiber.Ctx) error {
	r := &models.CardCreateRequest{}

	if err := c.Bind().JSON(r); err != nil {
		return bindError(c, err)
	}

	card, err := s.service.CreateCard(c.Context(), r)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(card)
}

func (s *Server) handleGetCard(c fiber.Ctx) error {
	card, err := s.service.GetCard(c.Context(), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(card)
}

func (s *Server) handleDeleteCard(c fiber.Ctx) error {
	if err := s.service.DeleteCard(c.Context(), c.Params("id")); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) handleMatchCard(c fiber.Ctx) error {
	res, err := s.service.MatchCard(c.Context(), c.Params("last_four"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(res)
}
