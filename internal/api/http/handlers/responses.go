package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/missao-redime/church-service/internal/domain"
)

// Response shaping helpers. Password hashes never leave this package.

func memberResponse(m *domain.Member) fiber.Map {
	resp := fiber.Map{
		"id":         m.ID,
		"name":       m.Name,
		"cpf":        m.CPF,
		"role":       m.Role,
		"active":     m.Active,
		"created_at": m.CreatedAt,
	}
	if m.Email != nil {
		resp["email"] = *m.Email
	}
	if m.Profile != nil {
		resp["profile"] = profileResponse(m.Profile)
	}
	if len(m.Departments) > 0 {
		resp["departments"] = departmentSummaries(m.Departments)
	}
	if len(m.LedDepartments) > 0 {
		resp["led_departments"] = departmentSummaries(m.LedDepartments)
	}
	return resp
}

func profileResponse(p *domain.MemberProfile) fiber.Map {
	return fiber.Map{
		"phone":      p.Phone,
		"address":    p.Address,
		"number":     p.Number,
		"complement": p.Complement,
		"city":       p.City,
		"state":      p.State,
		"zip_code":   p.ZipCode,
		"birth_date": p.BirthDate,
	}
}

func departmentSummaries(depts []domain.Department) []fiber.Map {
	result := make([]fiber.Map, 0, len(depts))
	for _, d := range depts {
		result = append(result, fiber.Map{
			"id":   d.ID,
			"name": d.Name,
			"slug": d.Slug,
		})
	}
	return result
}

func departmentResponse(d *domain.Department) fiber.Map {
	return fiber.Map{
		"id":          d.ID,
		"name":        d.Name,
		"slug":        d.Slug,
		"description": d.Description,
		"category":    d.Category,
		"leader_id":   d.LeaderID,
		"image_url":   d.ImageURL,
		"is_active":   d.IsActive,
		"created_at":  d.CreatedAt,
		"updated_at":  d.UpdatedAt,
	}
}

func departmentWithStatsResponse(d *domain.DepartmentWithStats) fiber.Map {
	resp := departmentResponse(&d.Department)
	resp["member_count"] = d.MemberCount
	if d.Leader != nil {
		resp["leader"] = fiber.Map{
			"id":    d.Leader.ID,
			"name":  d.Leader.Name,
			"email": d.Leader.Email,
		}
	}
	return resp
}

func donationResponse(d *domain.Donation) fiber.Map {
	return fiber.Map{
		"id":           d.ID,
		"amount":       d.Amount,
		"currency":     d.Currency,
		"type":         d.Type,
		"frequency":    d.Frequency,
		"status":       d.Status,
		"is_anonymous": d.IsAnonymous,
		"created_at":   d.CreatedAt,
	}
}

func prayerRequestResponse(p *domain.PrayerRequest) fiber.Map {
	return fiber.Map{
		"id":         p.ID,
		"name":       p.Name,
		"contact":    p.Contact,
		"request":    p.Request,
		"is_public":  p.IsPublic,
		"status":     p.Status,
		"created_at": p.CreatedAt,
		"prayed_at":  p.PrayedAt,
	}
}

func sermonResponse(s *domain.Sermon) fiber.Map {
	return fiber.Map{
		"id":          s.ID,
		"title":       s.Title,
		"slug":        s.Slug,
		"speaker":     s.Speaker,
		"description": s.Description,
		"video_url":   s.VideoURL,
		"preached_at": s.PreachedAt,
		"published":   s.Published,
	}
}
