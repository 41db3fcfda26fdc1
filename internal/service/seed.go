// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"time"

	"github.com/olegiv/vsm-cms/internal/model"
	"github.com/olegiv/vsm-cms/internal/richtext"
)

func seedDate(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedHTML(steps ...func(richtext.Surface) error) string {
	b := richtext.NewBuilder()
	for _, step := range steps {
		if err := step(b); err != nil {
			panic(err)
		}
	}
	return b.HTML()
}

func exec(cmd richtext.Command, args ...string) func(richtext.Surface) error {
	return func(s richtext.Surface) error { return s.Exec(cmd, args...) }
}

// SeedArticles returns the articles shown before anything has been stored.
func SeedArticles() []model.Article {
	return []model.Article{
		{
			ID:    "1",
			Title: "Giải Marathon Hà Nội 2024 - Sự kiện thể thao lớn nhất năm",
			ShortDescription: "Giải Marathon Hà Nội 2024 đã diễn ra thành công với sự tham gia của hơn 10,000 " +
				"vận động viên từ khắp nơi trên thế giới.",
			Thumbnail: model.DefaultThumbnail,
			Content: seedHTML(
				exec(richtext.Heading2, "Giới thiệu về giải Marathon Hà Nội 2024"),
				exec(richtext.Paragraph, "Giải Marathon Hà Nội 2024 là một trong những sự kiện thể thao lớn nhất "+
					"trong năm, thu hút sự tham gia của hàng nghìn vận động viên chuyên nghiệp và nghiệp dư từ "+
					"khắp nơi trên thế giới."),
				exec(richtext.Heading3, "Các cự ly thi đấu"),
				exec(richtext.BulletList, "Full Marathon (42.195km)", "Half Marathon (21.1km)", "10K Fun Run", "5K Family Run"),
				exec(richtext.Paragraph, "Sự kiện không chỉ là cuộc thi chạy mà còn là dịp để cộng đồng chạy bộ "+
					"giao lưu, học hỏi và chia sẻ kinh nghiệm."),
			),
			Category:    model.CategoryEvent,
			Tags:        model.Tags{"marathon", "hanoi", "2024"},
			Author:      "Nguyễn Văn A",
			CreatedAt:   seedDate("2024-12-15"),
			IsPublished: true,
		},
		{
			ID:    "2",
			Title: "Hướng dẫn tập luyện Marathon cho người mới bắt đầu",
			ShortDescription: "Những lời khuyên và kế hoạch tập luyện chi tiết dành cho những người mới " +
				"bắt đầu chạy Marathon.",
			Thumbnail: model.DefaultThumbnail,
			Content: seedHTML(
				exec(richtext.Heading2, "Bắt đầu từ những bước nhỏ"),
				exec(richtext.OrderedList, "Chạy chậm 3 buổi mỗi tuần", "Tăng quãng đường tối đa 10% mỗi tuần",
					"Nghỉ ngơi đầy đủ sau các buổi chạy dài"),
			),
			Category:    model.CategoryGuide,
			Tags:        model.Tags{"training", "beginner", "tips"},
			Author:      "Trần Thị B",
			CreatedAt:   seedDate("2024-12-10"),
			IsPublished: true,
		},
		{
			ID:    "3",
			Title: "Dinh dưỡng cho vận động viên Marathon",
			ShortDescription: "Chế độ dinh dưỡng khoa học giúp vận động viên Marathon đạt hiệu suất tối ưu " +
				"trong quá trình tập luyện và thi đấu.",
			Thumbnail: model.DefaultThumbnail,
			Content: seedHTML(
				exec(richtext.Heading2, "Năng lượng cho đường dài"),
				exec(richtext.Paragraph, "Carbohydrate, protein và nước là ba yếu tố quan trọng nhất trong "+
					"chế độ ăn của vận động viên sức bền."),
			),
			Category:    model.CategoryHealth,
			Tags:        model.Tags{"nutrition", "health", "performance"},
			Author:      "Lê Văn C",
			CreatedAt:   seedDate("2024-12-05"),
			IsPublished: false,
		},
	}
}

// SeedMembers returns the roster shown before anything has been stored.
func SeedMembers() []model.User {
	return []model.User{
		{ID: "1", Name: "Admin", Email: "admin@vsm.org.vn", Role: model.RoleAdmin, JoinedAt: "2024-01-01", Status: model.StatusActive},
		{ID: "2", Name: "Quách Thành Long", Email: "longquachthanh1307.ctv@vsm.org.vn", Role: model.RoleCollaborator, JoinedAt: "2024-02-15", Status: model.StatusActive},
		{ID: "3", Name: "Nguyễn Văn A", Email: "nguyenvana.ctv@vsm.org.vn", Role: model.RoleCollaborator, JoinedAt: "2024-03-10", Status: model.StatusActive},
		{ID: "4", Name: "Trần Thị B", Email: "tranthib.ctv@vsm.org.vn", Role: model.RoleCollaborator, JoinedAt: "2024-03-20", Status: model.StatusInactive},
	}
}

func strPtr(s string) *string { return &s }

// DefaultAnnouncements returns the organization notices shown on every calendar.
func DefaultAnnouncements() []model.Announcement {
	return []model.Announcement{
		{
			ID: "admin-1", Date: "2025-01-07", Title: "Họp team hàng tuần",
			Content: "Họp review công việc tuần", Color: "#e74c3c", Time: strPtr("14:00"),
		},
		{
			ID: "admin-2", Date: "2025-01-10", Title: "Deadline báo cáo tháng",
			Content: "Nộp báo cáo tháng 12", Color: "#e67e22", Time: strPtr("17:00"),
		},
	}
}

// seedChat returns the opening messages of a new chat room.
func seedChat(now time.Time) []model.ChatMessage {
	return []model.ChatMessage{
		{
			ID: "seed-1", Sender: "Admin",
			Content:   "Chào mọi người! Hôm nay chúng ta có cuộc họp lúc 2 giờ chiều.",
			Timestamp: now.Add(-time.Hour),
		},
		{
			ID: "seed-2", Sender: "Nguyễn Văn A",
			Content:   "Dạ em đã chuẩn bị xong báo cáo rồi ạ!",
			Timestamp: now.Add(-30 * time.Minute),
		},
	}
}
