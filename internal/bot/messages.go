package bot

// Reply keyboard labels. These double as routing keys for text updates, so
// changing one orphans the button on every open chat.
const (
	btnAddItem      = "➕ Добавить"
	btnShowList     = "📋 Список"
	btnToggleBought = "👁 Показать/Скрыть"
	btnClearBought  = "🗑 Удалить купленные"
	btnCancel       = "❌ Отмена"
)

const msgWelcome = `Привет! 👋

Это бот для управления списком покупок.

Используй кнопки ниже для управления списком:
• Добавить товар
• Показать список покупок
• Показать/скрыть купленные товары
• Удалить все купленные товары`

const (
	msgAccessDenied    = "⛔️ У вас нет доступа к этому боту."
	msgChooseDept      = "Выберите отдел для товара:"
	msgEnterItemName   = "Введите название товара:"
	msgItemAdded       = "✅ Товар добавлен в список!"
	msgCancelled       = "Отменено."
	msgBoughtCleared   = "🗑 Все купленные товары удалены."
	msgNoBoughtItems   = "Нет купленных товаров для удаления."
	msgActionFailed    = "Не получилось, попробуйте ещё раз."
	msgUnsupported     = "Неподдерживаемое действие"
	msgTestOK          = "Бот работает и видит ваши сообщения! ✅"
	msgAddCatUsage     = "Использование: /add_cat Название категории"
	msgCategoryExists  = "❌ Категория с таким названием уже существует."
	msgCategoryMenu    = "⚙️ *Управление категориями*\n\nВыберите действие:"
	msgChooseCatRename = "Выберите категорию для переименования:"
	msgChooseCatDelete = "Выберите категорию для удаления:"
	msgEnterNewCatName = "Введите новое название категории:"
	msgEnterCatName    = "Введите название новой категории:"
	msgCategoryRenamed = "✅ Категория переименована."
	msgJoinUsage       = "Использование: /join КОД"
	msgJoinInvalid     = "❌ Неверный код приглашения."
	msgJoinAlready     = "Вы уже участник этого списка."
	msgJoined          = "✅ Вы присоединились к общему списку!"
)

const (
	msgCategoryAddedFmt  = "✅ Категория '%s' добавлена."
	msgCategoryDeleteFmt = "✅ Категория удалена вместе с %d товарами."
	msgConfirmDeleteFmt  = "⚠️ Удалить категорию *%s*?\n\nВ ней %d товаров. Все товары будут удалены!"
	msgJoinConfirmFmt    = "Присоединиться к общему списку по коду `%s`?"
	msgShareFmt          = "🔗 Код вашего списка: `%s`\n\nОтправьте его близким — команда /join %s подключит их к общему списку."
)
