package store

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// SeedCategories is the fixed starter category set, in insertion order.
var SeedCategories = []string{
	"🧹 Быт и уборка",
	"🧴 Гигиена и уход",
	"🍳 Дом и кухня",
	"🥦 Овощи и зелень",
	"🍎 Фрукты и ягоды",
	"🥩 Мясо, рыба и птица",
	"🥛 Молочные продукты и яйца",
	"🍝 Бакалея",
	"🥫 Консервы и готовые продукты",
	"🍬 Сладости и снеки",
	"🍷 Напитки и алкоголь",
	"🍼 Детские товары",
}

type seedItem struct {
	name       string
	department string
}

var seedItems = []seedItem{
	// Быт и уборка
	{"Пакеты для мусора", "🧹 Быт и уборка"}, {"Жидкость для посудомойки", "🧹 Быт и уборка"},
	{"Таблетки для посудомойки", "🧹 Быт и уборка"}, {"Хлорка", "🧹 Быт и уборка"},
	{"Максима для стирки", "🧹 Быт и уборка"}, {"Батарейки", "🧹 Быт и уборка"},

	// Гигиена и уход
	{"Мыло для рук", "🧴 Гигиена и уход"}, {"Зубная паста", "🧴 Гигиена и уход"},
	{"Влажные салфетки", "🧴 Гигиена и уход"}, {"Ёршики для унитаза", "🧴 Гигиена и уход"},
	{"Репеллент", "🧴 Гигиена и уход"}, {"Прокладки", "🧴 Гигиена и уход"},
	{"Шампунь", "🧴 Гигиена и уход"}, {"Зубные щётки", "🧴 Гигиена и уход"},
	{"Дезодорант", "🧴 Гигиена и уход"}, {"Жидкое мыло", "🧴 Гигиена и уход"},
	{"Туалетная бумага", "🧴 Гигиена и уход"}, {"Бумажные полотенца", "🧴 Гигиена и уход"},
	{"Детская нить для зубов", "🧴 Гигиена и уход"},

	// Дом и кухня
	{"Прихватки", "🍳 Дом и кухня"}, {"Сидушка для унитаза", "🍳 Дом и кухня"},
	{"Контейнеры для хранения", "🍳 Дом и кухня"}, {"Фольга", "🍳 Дом и кухня"},
	{"Дуршлаг", "🍳 Дом и кухня"}, {"Силикон формы для запекания", "🍳 Дом и кухня"},
	{"Бутылка для воды", "🍳 Дом и кухня"},

	// Овощи и зелень
	{"Помидоры", "🥦 Овощи и зелень"}, {"Картошка", "🥦 Овощи и зелень"},
	{"Болгарский перец", "🥦 Овощи и зелень"}, {"Огурцы свежие", "🥦 Овощи и зелень"},
	{"Морковь", "🥦 Овощи и зелень"}, {"Лук", "🥦 Овощи и зелень"},
	{"Кукуруза", "🥦 Овощи и зелень"}, {"Батат", "🥦 Овощи и зелень"},
	{"Чеснок", "🥦 Овощи и зелень"}, {"Баклажан", "🥦 Овощи и зелень"},
	{"Свекла", "🥦 Овощи и зелень"}, {"Брокколи", "🥦 Овощи и зелень"},
	{"Руккола", "🥦 Овощи и зелень"}, {"Авокадо", "🥦 Овощи и зелень"},
	{"Кабачки", "🥦 Овощи и зелень"}, {"Тыква", "🥦 Овощи и зелень"},
	{"Капуста", "🥦 Овощи и зелень"}, {"Шампиньоны", "🥦 Овощи и зелень"},

	// Фрукты и ягоды
	{"Бананы", "🍎 Фрукты и ягоды"}, {"Яблоки", "🍎 Фрукты и ягоды"},
	{"Арбуз", "🍎 Фрукты и ягоды"}, {"Груша", "🍎 Фрукты и ягоды"},
	{"Нектарины", "🍎 Фрукты и ягоды"}, {"Дыня", "🍎 Фрукты и ягоды"},
	{"Виноград", "🍎 Фрукты и ягоды"}, {"Чернослив", "🍎 Фрукты и ягоды"},
	{"Ягоды / заморозка", "🍎 Фрукты и ягоды"}, {"Хурма", "🍎 Фрукты и ягоды"},
	{"Апельсин", "🍎 Фрукты и ягоды"},

	// Напитки и алкоголь
	{"Вода", "🍷 Напитки и алкоголь"}, {"Вино", "🍷 Напитки и алкоголь"},
	{"Сок", "🍷 Напитки и алкоголь"}, {"Лёд", "🍷 Напитки и алкоголь"},
	{"Пиво", "🍷 Напитки и алкоголь"}, {"Коньяк", "🍷 Напитки и алкоголь"},
	{"Кофе", "🍷 Напитки и алкоголь"}, {"Чай", "🍷 Напитки и алкоголь"},
	{"Какао", "🍷 Напитки и алкоголь"},

	// Детские товары
	{"Пюре", "🍼 Детские товары"}, {"Памперсы", "🍼 Детские товары"},
	{"Памперсы трусики", "🍼 Детские товары"},

	// Сладости и снеки
	{"Бамба", "🍬 Сладости и снеки"}, {"Маршмэллоу", "🍬 Сладости и снеки"},
	{"Сахар", "🍬 Сладости и снеки"}, {"Темный шоколад", "🍬 Сладости и снеки"},
	{"Курага", "🍬 Сладости и снеки"}, {"Тыквенные семечки", "🍬 Сладости и снеки"},
	{"К чаю", "🍬 Сладости и снеки"}, {"Ванильный сахар", "🍬 Сладости и снеки"},

	// Бакалея
	{"Паста", "🍝 Бакалея"}, {"Гречка", "🍝 Бакалея"}, {"Манка", "🍝 Бакалея"},
	{"Соль", "🍝 Бакалея"}, {"Мука", "🍝 Бакалея"}, {"Овсянка", "🍝 Бакалея"},
	{"Лимонный сок", "🍝 Бакалея"}, {"Оливковое масло", "🍝 Бакалея"},
	{"Рис", "🍝 Бакалея"}, {"Киноа", "🍝 Бакалея"}, {"Булгур", "🍝 Бакалея"},
	{"Бурый рис", "🍝 Бакалея"}, {"Пшено", "🍝 Бакалея"}, {"Хумус", "🍝 Бакалея"},
	{"Паста для пиццы", "🍝 Бакалея"}, {"Чечевица", "🍝 Бакалея"}, {"Хлеб", "🍝 Бакалея"},

	// Консервы и готовые продукты
	{"Соленые огурцы", "🥫 Консервы и готовые продукты"},
	{"Консервированная кукуруза", "🥫 Консервы и готовые продукты"},
	{"Мак (сушеный)", "🥫 Консервы и готовые продукты"},
	{"Консерв белая фасоль", "🥫 Консервы и готовые продукты"},
	{"Корица молотая", "🥫 Консервы и готовые продукты"},
	{"Сардины в банке", "🥫 Консервы и готовые продукты"},
	{"Оливки", "🥫 Консервы и готовые продукты"},

	// Молочные продукты и яйца
	{"Яйца", "🥛 Молочные продукты и яйца"}, {"Молоко", "🥛 Молочные продукты и яйца"},
	{"Сливочное масло", "🥛 Молочные продукты и яйца"}, {"Йогурт", "🥛 Молочные продукты и яйца"},
	{"Сыр", "🥛 Молочные продукты и яйца"}, {"Сыр фета", "🥛 Молочные продукты и яйца"},
	{"Творог", "🥛 Молочные продукты и яйца"}, {"Кефир", "🥛 Молочные продукты и яйца"},
	{"Моцарелла", "🥛 Молочные продукты и яйца"}, {"Сливки", "🥛 Молочные продукты и яйца"},

	// Мясо, рыба и птица
	{"Мясо", "🥩 Мясо, рыба и птица"}, {"Курица", "🥩 Мясо, рыба и птица"},
	{"Рыба", "🥩 Мясо, рыба и птица"}, {"Ветчина", "🥩 Мясо, рыба и птица"},
	{"Колбаса", "🥩 Мясо, рыба и птица"}, {"Печень", "🥩 Мясо, рыба и птица"},
	{"Индейка", "🥩 Мясо, рыба и птица"}, {"Фарш говяжий", "🥩 Мясо, рыба и птица"},
	{"Сосиски", "🥩 Мясо, рыба и птица"},
}

// Seed inserts the fixed category set (ignoring ones that already exist) and,
// only when the group has no items at all, the starter items. Safe to call on
// every /start.
func (s *Store) Seed(ctx context.Context, userID int64) error {
	seededItems := 0
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		groupID, err := s.ensureGroupTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		for _, name := range SeedCategories {
			exists, err := s.categoryExistsTx(ctx, tx, groupID, name)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			query, args, err := s.sb.
				Insert("categories").
				Columns("user_id", "name", "group_id").
				Values(userID, name, groupID).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed category %q: %w", name, err)
			}
		}

		// Items are only seeded into an empty group so repeated /start
		// never duplicates them.
		query, args, err := s.sb.
			Select("COUNT(*)").
			From("items").
			Where(sq.Eq{"group_id": groupID}).
			ToSql()
		if err != nil {
			return err
		}
		var count int
		if err := tx.GetContext(ctx, &count, query, args...); err != nil {
			return fmt.Errorf("count items: %w", err)
		}
		if count > 0 {
			return nil
		}

		insert := s.sb.
			Insert("items").
			Columns("user_id", "name", "department", "is_bought", "group_id")
		for _, it := range seedItems {
			insert = insert.Values(userID, it.name, it.department, false, groupID)
		}
		query, args, err = insert.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
		seededItems = len(seedItems)
		return nil
	})
	if err != nil {
		return err
	}
	if seededItems > 0 {
		s.log.Info("starter data seeded",
			slog.String("event", "db.seed"),
			slog.Int64("user_id", userID),
			slog.Int("categories", len(SeedCategories)),
			slog.Int("items", seededItems),
		)
	}
	return nil
}
