package controller

import (
	"net/http"
	"strconv"

	"blog-ui/web/service"
	"blog-ui/web/session"

	"github.com/gin-gonic/gin"
)

// PostForm represents the post authoring request body.
type PostForm struct {
	Title   string   `json:"post_title" form:"post_title"`
	Content string   `json:"post_content" form:"post_content"`
	Tags    []string `json:"tags" form:"tags"`
}

// DeletePostForm identifies the post to delete and its claimed author.
type DeletePostForm struct {
	PostID int    `json:"post_id" form:"post_id"`
	Author string `json:"author" form:"author"`
}

// PostController handles post authoring and retrieval. Listing and
// fetching single posts are public; authoring and deletion require a
// logged-in user.
type PostController struct {
	BaseController

	postService *service.PostService
}

func NewPostController(g *gin.RouterGroup, postService *service.PostService) *PostController {
	a := &PostController{postService: postService}
	a.initRouter(g)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup) {
	g.GET("/posts", a.listAll)
	g.GET("/post/:id", a.getByID)

	user := g.Group("/")
	user.Use(a.checkUser)
	user.POST("/post/create", a.create)
	user.POST("/post/delete", a.delete)
	user.POST("/my/posts", a.listMine)
}

func (a *PostController) listAll(c *gin.Context) {
	posts, err := a.postService.ListAll()
	if err != nil {
		pureJsonMsg(c, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	jsonObj(c, posts)
}

func (a *PostController) getByID(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid post ID")
		return
	}

	post, err := a.postService.GetByID(postID)
	if err == service.ErrNotFound {
		pureJsonMsg(c, http.StatusNotFound, false, "Post not found")
		return
	}
	if err != nil {
		pureJsonMsg(c, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	jsonObj(c, post)
}

func (a *PostController) create(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid form data")
		return
	}
	if form.Title == "" || form.Content == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "Title and content are required")
		return
	}

	author := session.GetLoginUser(c)
	result := a.postService.Create(form.Title, form.Content, author, form.Tags)
	jsonResult(c, result)
}

func (a *PostController) delete(c *gin.Context) {
	var form DeletePostForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "Invalid form data")
		return
	}

	// Users may only delete their own posts.
	if session.GetLoginUser(c) != form.Author {
		pureJsonMsg(c, http.StatusForbidden, false, "You can only delete your own posts")
		return
	}

	result := a.postService.Delete(form.PostID)
	jsonResult(c, result)
}

func (a *PostController) listMine(c *gin.Context) {
	author := session.GetLoginUser(c)
	posts, err := a.postService.ListByAuthor(author)
	if err != nil {
		pureJsonMsg(c, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	jsonObj(c, posts)
}
