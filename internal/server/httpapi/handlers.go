package httpapi

import (
	"strconv"
	"time"

	"github.com/dmitrijs2005/fileledger/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

func parseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) stats(c *fiber.Ctx) error {
	stats, err := s.files.GetSyncStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (s *Server) file(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	file, err := s.files.GetFile(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !file.Exists() {
		return fiber.NewError(fiber.StatusNotFound, "file not found")
	}
	return c.JSON(file)
}

func (s *Server) share(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	perm, err := s.files.GetShare(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !perm.Exists() {
		return fiber.NewError(fiber.StatusNotFound, "permission not found")
	}
	return c.JSON(perm)
}

func (s *Server) userFileCount(c *fiber.Ctx) error {
	owner := c.Params("id")
	n, err := s.files.GetUserFileCount(c.UserContext(), models.Identity(owner))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"owner": owner, "count": n})
}

func (s *Server) balance(c *fiber.Ctx) error {
	user := c.Params("user")
	points, err := s.rewards.GetBalance(c.UserContext(), models.UserID(user))
	if err != nil {
		return err
	}
	return c.JSON(models.RewardBalance{User: models.UserID(user), Points: points})
}

// retention reports the deadline as RFC 3339, or null if no write has set one yet.
func (s *Server) retention(c *fiber.Ctx) error {
	deadline, err := s.files.GetRetention(c.UserContext())
	if err != nil {
		return err
	}
	if deadline.IsZero() {
		return c.JSON(fiber.Map{"deadline": nil})
	}
	return c.JSON(fiber.Map{"deadline": deadline.UTC().Format(time.RFC3339), "unix": deadline.Unix()})
}
