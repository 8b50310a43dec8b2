package directory

import "time"

func ts(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

// SeedClients returns the demo dataset written on first run. Ids are
// the short historical ones so they stay addressable in docs and tests.
func SeedClients() []Client {
	return []Client{
		{
			ID:        "1",
			FirstName: "Marie",
			LastName:  "Dubois",
			Email:     "marie.dubois@example.com",
			Phone:     "+261 33 94 565 45",
			CreatedAt: ts("2025-01-15T10:30:00Z"),
			Company:   "TechCorp",
			Position:  "Directrice Marketing",
			Tags:      []string{"VIP", "Marketing"},
			Activities: []Activity{
				{
					ID:          "1",
					Type:        ActivityCall,
					Title:       "Appel de prospection",
					Description: "Discussion sur les besoins en marketing digital",
					Date:        ts("2025-01-20T14:30:00Z"),
				},
				{
					ID:          "2",
					Type:        ActivityEmail,
					Title:       "Envoi de proposition",
					Description: "Proposition commerciale envoyée",
					Date:        ts("2025-01-22T09:15:00Z"),
				},
			},
		},
		{
			ID:        "2",
			FirstName: "Pierre",
			LastName:  "Martin",
			Email:     "pierre.martin@example.com",
			Phone:     "+261 32 85 945 60",
			CreatedAt: ts("2025-01-10T14:20:00Z"),
			Company:   "InnovateLab",
			Position:  "CTO",
			Tags:      []string{"Tech", "Innovation"},
			Activities: []Activity{
				{
					ID:          "3",
					Type:        ActivityMeeting,
					Title:       "Réunion technique",
					Description: "Présentation de nos solutions techniques",
					Date:        ts("2025-01-18T16:00:00Z"),
				},
			},
		},
		{
			ID:        "3",
			FirstName: "Sophie",
			LastName:  "Bernard",
			Email:     "sophie.bernard@example.com",
			Phone:     "+261 38 44 540 12",
			CreatedAt: ts("2025-01-05T09:45:00Z"),
			Company:   "StartupXYZ",
			Position:  "CEO",
			Tags:      []string{"Startup", "VIP"},
			Activities: []Activity{
				{
					ID:          "4",
					Type:        ActivityNote,
					Title:       "Note de suivi",
					Description: "Client très intéressé par nos services",
					Date:        ts("2025-01-12T11:30:00Z"),
				},
			},
		},
		{
			ID:         "4",
			FirstName:  "Thomas",
			LastName:   "Leroy",
			Email:      "thomas.leroy@example.com",
			Phone:      "+261 33 94 565 45",
			CreatedAt:  ts("2025-01-08T16:15:00Z"),
			Company:    "BigCorp",
			Position:   "Responsable Achats",
			Tags:       []string{"Corporate"},
			Activities: []Activity{},
		},
		{
			ID:        "5",
			FirstName: "Emma",
			LastName:  "Rousseau",
			Email:     "emma.rousseau@example.com",
			Phone:     "+261 32 85 945 60",
			CreatedAt: ts("2025-01-12T11:00:00Z"),
			Company:   "DesignStudio",
			Position:  "Directrice Créative",
			Tags:      []string{"Design", "Créatif"},
			Activities: []Activity{
				{
					ID:          "5",
					Type:        ActivityCall,
					Title:       "Appel de suivi",
					Description: "Discussion sur le projet en cours",
					Date:        ts("2025-01-25T10:00:00Z"),
				},
			},
		},
	}
}
