package database

import (
	"context"
	"fmt"
	"log/slog"
)

// InitializeTemplateData inserts or updates the default task templates.
// Titles are the stable identity: reruns update descriptions and
// requirements in place without duplicating rows.
func (db *DB) InitializeTemplateData(ctx context.Context) error {
	type templateDef struct {
		Title       string
		Description string
		Mood        *int // nil matches any mood
		Energy      *int // nil matches any energy
	}

	mood := func(v int) *int { return &v }
	energy := func(v int) *int { return &v }

	templates := []templateDef{
		// Low energy, any mood
		{"Ćwiczenia oddechowe", "Usiądź wygodnie i przez 5 minut oddychaj powoli: 4 sekundy wdechu, 6 sekund wydechu.", nil, energy(1)},
		{"Szklanka wody i chwila ciszy", "Wypij powoli szklankę wody, odkładając na ten czas telefon.", nil, energy(1)},
		{"Rozciąganie przy biurku", "Wykonaj 5 minut delikatnego rozciągania karku, ramion i pleców.", nil, energy(1)},

		// Medium energy
		{"Krótki spacer", "Wyjdź na 15-minutowy spacer bez słuchawek. Zwróć uwagę na trzy rzeczy, które widzisz po raz pierwszy.", nil, energy(2)},
		{"Porządek na biurku", "Poświęć 10 minut na uporządkowanie miejsca, w którym spędzasz najwięcej czasu.", nil, energy(2)},
		{"Telefon do bliskiej osoby", "Zadzwoń do kogoś, z kim dawno nie rozmawiałeś. Wystarczy 10 minut.", nil, energy(2)},

		// High energy
		{"Trening 20 minut", "Wykonaj 20 minut dowolnej aktywności fizycznej, która podnosi tętno.", nil, energy(3)},
		{"Spacer z celem", "Zaplanuj trasę 30-minutowego spaceru i przejdź ją w całości.", nil, energy(3)},

		// Mood-specific
		{"Trzy dobre rzeczy", "Zapisz trzy rzeczy, które dziś poszły dobrze, nawet jeśli są drobne.", mood(1), nil},
		{"List do siebie", "Napisz kilka zdań do siebie tak, jakbyś pisał do przyjaciela, który ma gorszy dzień.", mood(2), nil},
		{"Podziel się energią", "Zrób dziś jedną małą rzecz dla kogoś innego i zapisz, jak się z tym czujesz.", mood(5), nil},

		// Universal fallbacks, match any check-in
		{"Chwila uważności", "Przez 3 minuty skup się wyłącznie na swoim oddechu. Gdy myśli uciekają, łagodnie wracaj.", nil, nil},
		{"Notatka wdzięczności", "Zapisz jedną rzecz, za którą jesteś dziś wdzięczny.", nil, nil},
	}

	insertSQL := `
        INSERT INTO task_templates (
            title, description, required_mood_level, required_energy_level,
            metadata, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, '{}'::jsonb, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
        ) ON CONFLICT (title) DO UPDATE SET
            description = EXCLUDED.description,
            required_mood_level = EXCLUDED.required_mood_level,
            required_energy_level = EXCLUDED.required_energy_level,
            updated_at = CURRENT_TIMESTAMP;
    `

	// The upsert needs a unique title; older deployments may predate it.
	if _, err := db.ExecWithLog(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_task_templates_title ON task_templates(title);`); err != nil {
		return fmt.Errorf("failed to create template title index: %w", err)
	}

	for _, t := range templates {
		if _, err := db.ExecWithLog(ctx, insertSQL,
			t.Title, t.Description, t.Mood, t.Energy,
		); err != nil {
			return fmt.Errorf("failed to upsert template %q: %w", t.Title, err)
		}
	}

	slog.Info("Task templates initialized/updated successfully", slog.Int("count", len(templates)))
	return nil
}
