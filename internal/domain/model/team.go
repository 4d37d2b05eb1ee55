package model

// Team команда в режиме совместной работы
type Team struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// HasMember проверяет, есть ли ученик в составе
func (t Team) HasMember(name string) bool {
	for _, m := range t.Members {
		if m == name {
			return true
		}
	}
	return false
}

// CloneTeams копия состава, не разделяющая срезы участников
func CloneTeams(teams []Team) []Team {
	out := make([]Team, len(teams))
	for i, t := range teams {
		out[i] = Team{Name: t.Name, Members: append([]string{}, t.Members...)}
	}
	return out
}
