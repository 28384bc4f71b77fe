package validation

import "regexp"

var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

var (
	postStatuses   = []string{"draft", "published", "archived"}
	taskStatuses   = []string{"todo", "in-progress", "completed"}
	taskPriorities = []string{"low", "medium", "high"}
)

func UserRegistration() []*Rule {
	return []*Rule{
		Field("username").
			Length(3, 30, "Username must be between 3 and 30 characters").
			Matches(usernameRegexp, "Username can only contain letters, numbers, and underscores"),
		Field("email").
			Email("Please provide a valid email"),
		Field("password").
			Length(6, 0, "Password must be at least 6 characters long").
			Password("Password must contain at least one uppercase letter, one lowercase letter, and one number"),
	}
}

func UserLogin() []*Rule {
	return []*Rule{
		Field("email").
			Email("Please provide a valid email"),
		Field("password").
			NotEmpty("Password is required"),
	}
}

func PasswordChange() []*Rule {
	return []*Rule{
		Field("currentPassword").
			NotEmpty("Current password is required"),
		Field("newPassword").
			Length(6, 0, "Password must be at least 6 characters long").
			Password("Password must contain at least one uppercase letter, one lowercase letter, and one number"),
	}
}

func Post() []*Rule {
	return []*Rule{
		Field("title").
			Length(5, 200, "Title must be between 5 and 200 characters"),
		Field("content").
			Length(10, 0, "Content must be at least 10 characters long"),
		Field("tags").Optional().
			StringArray("Tags must be an array"),
		Field("status").Optional().
			OneOf(postStatuses, "Invalid status value"),
	}
}

func TaskCreate() []*Rule {
	return []*Rule{
		Field("title").
			Length(3, 100, "Title must be between 3 and 100 characters"),
		Field("description").Optional().
			Length(0, 500, "Description cannot exceed 500 characters"),
		Field("status").Optional().
			OneOf(taskStatuses, "Invalid status value"),
		Field("priority").Optional().
			OneOf(taskPriorities, "Invalid priority value"),
		Field("dueDate").Optional().
			ISODate("Invalid due date format"),
		Field("tags").Optional().
			StringArray("Tags must be an array"),
	}
}

// TaskUpdate is TaskCreate with every field optional.
func TaskUpdate() []*Rule {
	return []*Rule{
		Field("title").Optional().
			Length(3, 100, "Title must be between 3 and 100 characters"),
		Field("description").Optional().
			Length(0, 500, "Description cannot exceed 500 characters"),
		Field("status").Optional().
			OneOf(taskStatuses, "Invalid status value"),
		Field("priority").Optional().
			OneOf(taskPriorities, "Invalid priority value"),
		Field("dueDate").Optional().
			ISODate("Invalid due date format"),
		Field("tags").Optional().
			StringArray("Tags must be an array"),
	}
}

func Pagination() []*Rule {
	return []*Rule{
		Field("page").Optional().
			IntRange(1, 0, "Page must be a positive integer"),
		Field("limit").Optional().
			IntRange(1, 100, "Limit must be between 1 and 100"),
	}
}
